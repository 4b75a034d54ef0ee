package scratch

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ErasePointRadius != 15 || cfg.ErasingCellScale != 2 ||
		cfg.InterpolationGap != 5 || cfg.ClearThreshold != 0.5 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero radius", func(c *Config) { c.ErasePointRadius = 0 }},
		{"negative radius", func(c *Config) { c.ErasePointRadius = -3 }},
		{"NaN radius", func(c *Config) { c.ErasePointRadius = math.NaN() }},
		{"zero scale", func(c *Config) { c.ErasingCellScale = 0 }},
		{"zero gap", func(c *Config) { c.InterpolationGap = 0 }},
		{"threshold above one", func(c *Config) { c.ClearThreshold = 1.01 }},
		{"negative threshold", func(c *Config) { c.ClearThreshold = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigBoundaryThresholds(t *testing.T) {
	for _, th := range []float64{0, 1} {
		cfg := DefaultConfig()
		cfg.ClearThreshold = th
		if err := cfg.Validate(); err != nil {
			t.Errorf("threshold %v: Validate() = %v", th, err)
		}
	}
}
