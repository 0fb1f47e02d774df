package app

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl files or directories

	Output    string
	LogFormat string
	LogLevel  string
	// MaxPaths overrides the `settings` block when non-zero. A negative
	// value removes the cap.
	MaxPaths int
	Workers  int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}

	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return nil, fmt.Errorf("invalid output: must be '%s' or '%s', got '%s'", OutputText, OutputJSON, cfg.Output)
	}

	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}

	return &cfg, nil
}
