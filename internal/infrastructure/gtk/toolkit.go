// Package gtk implements the toolkit port on GTK4 and WebKitGTK. It is the
// reference host GUI adapter: frames are application windows, webviews are
// WebKit views, and notifications go through the GApplication notification
// surface so click events come back as action activations.
package gtk

import (
	"context"
	"fmt"
	"runtime"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/logging"
	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"
)

// Toolkit implements port.Toolkit on a running gtk.Application.
type Toolkit struct {
	app    *gtk.Application
	logger zerolog.Logger
}

// New wraps an activated GTK application. The caller owns the application
// main loop; toolkit methods must be called from the main thread.
func New(ctx context.Context, app *gtk.Application) (*Toolkit, error) {
	if app == nil {
		return nil, fmt.Errorf("gtk application is required")
	}
	return &Toolkit{
		app:    app,
		logger: logging.FromContext(ctx).With().Str("component", "gtk").Logger(),
	}, nil
}

// App exposes the underlying application for notification wiring.
func (t *Toolkit) App() *gtk.Application { return t.app }

// CreateFrame creates a GTK application window from the frame descriptor.
func (t *Toolkit) CreateFrame(ctx context.Context, spec port.FrameSpec) (port.Frame, error) {
	win := gtk.NewApplicationWindow(t.app)
	if win == nil {
		return nil, fmt.Errorf("failed to create application window")
	}

	win.SetTitle(spec.Title)
	win.SetDefaultSize(spec.Width, spec.Height)
	if spec.IconPath != "" {
		// GTK4 resolves icons by name from the icon theme; the path's
		// basename sans extension is the conventional icon name.
		win.SetIconName(iconName(spec.IconPath))
	}

	if menu, ok := spec.MenuBar.(*MenuHandle); ok && menu != nil {
		t.app.SetMenubar(menu.model)
		win.SetShowMenubar(true)
	}

	frame := &frame{
		win:    win,
		logger: t.logger.With().Str("widget", "frame").Logger(),
	}
	frame.connectSignals()

	if !spec.Hidden {
		win.Present()
	}

	logging.FromContext(ctx).Debug().
		Str("title", spec.Title).
		Int("width", spec.Width).
		Int("height", spec.Height).
		Msg("frame created")

	return frame, nil
}

// NeedsRebuildWatchdog reports whether the platform requires the webview
// recovery heuristic. WebKitGTK recovers crashed web processes on its own
// everywhere but Windows builds, which do not exist for this adapter.
func (t *Toolkit) NeedsRebuildWatchdog() bool {
	return runtime.GOOS == "windows"
}

// handle wraps a GObject native pointer for the port boundary.
type handle struct {
	native uintptr
}

func (h handle) GoPointer() uintptr { return h.native }

func objectHandle(obj coreglib.Objector) port.NativeHandle {
	return handle{native: coreglib.InternObject(obj).Native()}
}

var _ port.Toolkit = (*Toolkit)(nil)
