// Package config provides configuration management for deskshell with Viper
// integration: defaults, TOML file in the XDG config directory, environment
// overrides, and fsnotify-driven hot reload.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete configuration for deskshell.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging"`
	Window   WindowConfig   `mapstructure:"window" toml:"window"`
	Watchdog WatchdogConfig `mapstructure:"watchdog" toml:"watchdog"`
	State    StateConfig    `mapstructure:"state" toml:"state"`
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
}

// WindowConfig holds default window geometry and chrome.
type WindowConfig struct {
	Width       int    `mapstructure:"width" toml:"width"`
	Height      int    `mapstructure:"height" toml:"height"`
	Icon        string `mapstructure:"icon" toml:"icon"`
	ResourceDir string `mapstructure:"resource_dir" toml:"resource_dir"`
}

// WatchdogConfig holds the webview health probe settings.
type WatchdogConfig struct {
	Interval time.Duration `mapstructure:"interval" toml:"interval"`
}

// StateConfig holds window state persistence settings.
type StateConfig struct {
	// Path of the sqlite database; empty disables persistence.
	Path string `mapstructure:"path" toml:"path"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("DESKSHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "DESKSHELL_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DESKSHELL_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DESKSHELL_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DESKSHELL_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the configuration, falling back to defaults when no file
// exists. A malformed file is an error; a missing one is not.
func (m *Manager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	setDefaults(m.viper)

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

// Get returns the currently loaded configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}
