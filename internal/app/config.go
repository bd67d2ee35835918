package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/modelmanifest/internal/manifest"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Manifest   manifest.Options
	ConfigPath string // optional HCL file, already merged into the fields below

	Watch           bool
	Debounce        time.Duration
	HealthcheckPort int

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the configuration used when the tool is invoked
// without flags or config file.
func DefaultConfig() Config {
	return Config{
		Manifest:  manifest.DefaultOptions(),
		LogFormat: "text",
		LogLevel:  "warn",
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error
	if err := cfg.Manifest.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, errors.New("invalid log-format: must be 'text' or 'json'"))
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'"))
	}

	if cfg.Debounce < 0 {
		errs = append(errs, fmt.Errorf("invalid debounce %s: must not be negative", cfg.Debounce))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
