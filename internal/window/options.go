// Package window implements the per-window control loop. One goroutine owns
// one window's full mutable state; commands from application code and native
// toolkit events enter the same mailbox and are applied strictly in order.
package window

import (
	"errors"
	"time"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/domain/url"
)

const (
	defaultWidth  = 600
	defaultHeight = 500
	defaultIcon   = "icon.png"

	defaultWatchdogInterval = 500 * time.Millisecond
	defaultMailboxSize      = 64
)

// Validation errors.
var (
	ErrMissingID      = errors.New("window: id is required")
	ErrMissingToolkit = errors.New("window: toolkit is required")
	ErrStopped        = errors.New("window: actor has stopped")
)

// Options are the construction parameters of a window, validated before the
// actor starts.
type Options struct {
	// ID is the unique logical name the window is registered under.
	ID string

	// Title defaults to ID.
	Title string

	// Width and Height default to 600x500.
	Width  int
	Height int

	// Hidden suppresses presenting the frame at start.
	Hidden bool

	// Icon is resolved from the application resource directory.
	// Defaults to "icon.png".
	Icon string

	// MenuBar describes the optional native menu bar.
	MenuBar *port.MenuSpec

	// IconMenu describes the optional tray icon menu. Its presence keeps
	// the application running after the window is closed.
	IconMenu *port.MenuSpec

	// URL is the default navigation target.
	URL url.Target

	// WatchdogInterval overrides the webview health probe period.
	WatchdogInterval time.Duration
}

// withDefaults returns a copy with defaults applied.
func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = o.ID
	}
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.Icon == "" {
		o.Icon = defaultIcon
	}
	if o.WatchdogInterval <= 0 {
		o.WatchdogInterval = defaultWatchdogInterval
	}
	return o
}

// Validate checks the options for construction-time errors.
func (o Options) Validate() error {
	if o.ID == "" {
		return ErrMissingID
	}
	return nil
}

// TrayFactory constructs the menu/taskbar sub-component for the given
// descriptors. It is only invoked when at least one descriptor is present.
type TrayFactory func(menuBar, iconMenu *port.MenuSpec) (port.Tray, error)

// Deps are the external collaborators a window actor consumes.
type Deps struct {
	Toolkit  port.Toolkit
	Notifier port.Notifier
	Desktop  port.DesktopIntegration
	Keys     port.LoginKeyProvider

	// NewTray is consulted when Options carry a MenuBar or IconMenu
	// descriptor. Nil disables both sub-components.
	NewTray TrayFactory

	// Store persists last URL and geometry across runs. Nil disables
	// persistence.
	Store port.WindowStateStore
}

func (d Deps) validate() error {
	if d.Toolkit == nil {
		return ErrMissingToolkit
	}
	return nil
}

// loginKey returns the current login key, or the empty string when no
// provider is wired.
func (d Deps) loginKey() string {
	if d.Keys == nil {
		return ""
	}
	return d.Keys.CurrentLoginKey()
}
