package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	defaultWindowWidth  = 600
	defaultWindowHeight = 500
	defaultWindowIcon   = "icon.png"

	defaultWatchdogInterval = 500 * time.Millisecond
)

// setDefaults registers the built-in configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("window.width", defaultWindowWidth)
	v.SetDefault("window.height", defaultWindowHeight)
	v.SetDefault("window.icon", defaultWindowIcon)
	v.SetDefault("window.resource_dir", "")

	v.SetDefault("watchdog.interval", defaultWatchdogInterval)

	v.SetDefault("state.path", "")
}
