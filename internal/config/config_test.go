package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	manager, err := NewManager()
	require.NoError(t, err)
	return manager
}

func TestLoadDefaults(t *testing.T) {
	manager := newTestManager(t)

	cfg, err := manager.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, defaultWindowWidth, cfg.Window.Width)
	assert.Equal(t, defaultWindowHeight, cfg.Window.Height)
	assert.Equal(t, defaultWindowIcon, cfg.Window.Icon)
	assert.Equal(t, defaultWatchdogInterval, cfg.Watchdog.Interval)
	assert.Empty(t, cfg.State.Path)

	assert.Same(t, cfg, manager.Get())
}

func TestLoadFromFile(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	appDir := filepath.Join(configDir, "deskshell")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(`
[logging]
level = "debug"

[window]
width = 1024
height = 768

[watchdog]
interval = "2s"
`), 0o644))

	manager, err := NewManager()
	require.NoError(t, err)

	cfg, err := manager.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, 2*time.Second, cfg.Watchdog.Interval)
	// Untouched sections keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvOverride(t *testing.T) {
	manager := newTestManager(t)
	t.Setenv("DESKSHELL_LOG_LEVEL", "trace")
	t.Setenv("DESKSHELL_LOG_FORMAT", "json")

	cfg, err := manager.Load()
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Logging:  LoggingConfig{Level: "info", Format: "console"},
			Window:   WindowConfig{Width: 600, Height: 500},
			Watchdog: WatchdogConfig{Interval: 500 * time.Millisecond},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "bad_level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
		},
		{
			name:   "bad_format",
			mutate: func(c *Config) { c.Logging.Format = "logfmt" },
		},
		{
			name:    "zero_width",
			mutate:  func(c *Config) { c.Window.Width = 0 },
			wantErr: ErrInvalidGeometry,
		},
		{
			name:    "negative_height",
			mutate:  func(c *Config) { c.Window.Height = -1 },
			wantErr: ErrInvalidGeometry,
		},
		{
			name:    "zero_interval",
			mutate:  func(c *Config) { c.Watchdog.Interval = 0 },
			wantErr: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			switch {
			case tt.name == "valid":
				assert.NoError(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}
