// Package desktop provides desktop environment integration: opening URLs in
// the system's default browser.
package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/logging"
)

// Opener implements port.DesktopIntegration by shelling out to the
// platform's URL handler.
type Opener struct {
	launcher string
	args     []string
}

// New creates a desktop opener for the current platform. On Linux it
// resolves xdg-open from PATH at construction time.
func New() *Opener {
	o := &Opener{}
	o.launcher, o.args = launcherFor(runtime.GOOS)

	if o.launcher != "" && len(o.args) == 0 {
		// Resolve once so later failures are launch failures, not
		// lookup failures.
		if path, err := exec.LookPath(o.launcher); err == nil {
			o.launcher = path
		}
	}

	return o
}

// launcherFor returns the command used to open URLs on the given OS.
func launcherFor(goos string) (launcher string, args []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// OpenExternal opens the URL in the default browser. The launched process
// is not waited on; the browser outlives the call.
func (o *Opener) OpenExternal(ctx context.Context, url string) error {
	log := logging.FromContext(ctx)

	if o.launcher == "" {
		return fmt.Errorf("no URL launcher available")
	}

	args := append(append([]string{}, o.args...), url)
	cmd := exec.CommandContext(ctx, o.launcher, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", o.launcher, err)
	}

	log.Debug().Str("url", url).Str("launcher", o.launcher).Msg("opened external browser")

	// Reap the launcher when it exits.
	go func() { _ = cmd.Wait() }()

	return nil
}

var _ port.DesktopIntegration = (*Opener)(nil)
