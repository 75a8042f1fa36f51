package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appDirName = "deskshell"

// GetConfigDir returns the deskshell configuration directory, honoring
// XDG_CONFIG_HOME with a ~/.config fallback.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// GetDataDir returns the deskshell data directory, honoring XDG_DATA_HOME
// with a ~/.local/share fallback.
func GetDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDirName), nil
}

// DefaultStatePath returns the default location of the window state
// database.
func DefaultStatePath() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state.db"), nil
}
