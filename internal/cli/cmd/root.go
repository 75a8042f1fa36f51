// Package cmd provides Cobra CLI commands for deskshell.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deskshell/deskshell/internal/domain/build"
)

var (
	buildInfo build.Info

	rootCmd = &cobra.Command{
		Use:   "deskshell",
		Short: "A native window shell for web applications",
		Long: `Deskshell hosts a web application inside a native window, with an
optional menu bar and system-tray icon, OS notifications with click
callbacks, and automatic webview recovery.

Use 'deskshell run' to launch a window.`,
	}
)

// SetBuildInfo stores build-time information for the version command.
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
