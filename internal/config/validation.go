package config

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidGeometry = errors.New("config: window width and height must be positive")
	ErrInvalidInterval = errors.New("config: watchdog interval must be positive")
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks a loaded configuration for consistency.
func Validate(cfg *Config) error {
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("config: unknown log level %q", cfg.Logging.Level)
	}
	if !validLogFormats[cfg.Logging.Format] {
		return fmt.Errorf("config: unknown log format %q", cfg.Logging.Format)
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return ErrInvalidGeometry
	}
	if cfg.Watchdog.Interval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}
