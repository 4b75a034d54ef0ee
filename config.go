package scratch

import "fmt"

// Default configuration values.
const (
	DefaultErasePointRadius = 15
	DefaultErasingCellScale = 2
	DefaultInterpolationGap = 5
	DefaultClearThreshold   = 0.5
)

// Config holds the tunables of a scratch session.
type Config struct {
	// ErasePointRadius is the brush radius in logical pixels.
	ErasePointRadius float64

	// ErasingCellScale subdivides each radius-sized grid step into this many
	// coverage cells. Larger values estimate coverage more precisely at a
	// quadratic cost per sample.
	ErasingCellScale int

	// InterpolationGap is the largest distance between synthesized
	// rectangles when two samples are far apart.
	InterpolationGap float64

	// ClearThreshold is the erased fraction in [0, 1] at which the whole
	// surface is cleared and the cleared event fires.
	ClearThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ErasePointRadius: DefaultErasePointRadius,
		ErasingCellScale: DefaultErasingCellScale,
		InterpolationGap: DefaultInterpolationGap,
		ClearThreshold:   DefaultClearThreshold,
	}
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	switch {
	case !(c.ErasePointRadius > 0):
		return fmt.Errorf("%w: erase point radius %v must be positive", ErrInvalidConfig, c.ErasePointRadius)
	case c.ErasingCellScale < 1:
		return fmt.Errorf("%w: erasing cell scale %d must be at least 1", ErrInvalidConfig, c.ErasingCellScale)
	case !(c.InterpolationGap > 0):
		return fmt.Errorf("%w: interpolation gap %v must be positive", ErrInvalidConfig, c.InterpolationGap)
	case !(c.ClearThreshold >= 0 && c.ClearThreshold <= 1):
		return fmt.Errorf("%w: clear threshold %v outside [0, 1]", ErrInvalidConfig, c.ClearThreshold)
	}
	return nil
}
