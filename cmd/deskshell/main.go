package main

import (
	"runtime"

	"github.com/deskshell/deskshell/internal/cli/cmd"
	"github.com/deskshell/deskshell/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// GTK requires its main loop on the initial OS thread.
	runtime.LockOSThread()

	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	cmd.Execute()
}
