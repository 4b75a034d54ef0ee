package scratch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a coverage grid would have a
	// non-positive number of rows or columns.
	ErrInvalidDimension = errors.New("scratch: invalid grid dimension")

	// ErrEmptyGrid is returned by ratio computations on a grid with no cells.
	// Sessions treat it as "nothing to check" rather than a failure.
	ErrEmptyGrid = errors.New("scratch: empty grid")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("scratch: invalid config")
)

// LoadError reports a mask that could not be fetched or decoded.
// The surface stays blank and the session remains usable.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("scratch: load mask %q: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
