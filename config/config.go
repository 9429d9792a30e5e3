package config

import (
	"fmt"
	"math"
	"time"
)

// Config is the root configuration structure.
// It is built from defaults and command-line flags; there is no config file.
type Config struct {
	Session  SessionConfig  `json:"session"`
	Estimate EstimateConfig `json:"estimate"`
	Filters  FilterConfig   `json:"filters"`
}

// SessionConfig holds session grouping options.
type SessionConfig struct {
	// Commits closer than this belong to the same coding session.
	MaxGapMinutes float64 `json:"maxGapMinutes"`
}

// EstimateConfig holds the time heuristic parameters.
type EstimateConfig struct {
	TimePerLineMinutes  float64 `json:"timePerLineMinutes"`  // ~1.2 seconds per line
	PreCommitLineFactor float64 `json:"preCommitLineFactor"` // 1 counts every line of the first commit
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

const (
	DefaultMaxGapMinutes       = 90
	DefaultTimePerLineMinutes  = 0.02
	DefaultPreCommitLineFactor = 1
)

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			MaxGapMinutes: DefaultMaxGapMinutes,
		},
		Estimate: EstimateConfig{
			TimePerLineMinutes:  DefaultTimePerLineMinutes,
			PreCommitLineFactor: DefaultPreCommitLineFactor,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// MaxGap returns the session gap threshold as a duration.
func (s SessionConfig) MaxGap() time.Duration {
	return time.Duration(s.MaxGapMinutes * float64(time.Minute))
}

// Validate rejects parameters that would make estimates meaningless.
func (c *Config) Validate() error {
	params := []struct {
		name  string
		value float64
	}{
		{"max gap", c.Session.MaxGapMinutes},
		{"time per line", c.Estimate.TimePerLineMinutes},
		{"pre-commit line factor", c.Estimate.PreCommitLineFactor},
	}
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%s must be a finite number, got %g", p.name, p.value)
		}
	}
	if c.Session.MaxGapMinutes <= 0 {
		return fmt.Errorf("max gap must be positive, got %g minutes", c.Session.MaxGapMinutes)
	}
	if c.Estimate.TimePerLineMinutes < 0 {
		return fmt.Errorf("time per line must not be negative, got %g", c.Estimate.TimePerLineMinutes)
	}
	if c.Estimate.PreCommitLineFactor < 0 {
		return fmt.Errorf("pre-commit line factor must not be negative, got %g", c.Estimate.PreCommitLineFactor)
	}
	return nil
}
