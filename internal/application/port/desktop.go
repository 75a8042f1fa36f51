package port

import "context"

// DesktopIntegration abstracts host desktop operations outside the window.
type DesktopIntegration interface {
	// OpenExternal opens the URL in the system's default browser. Used for
	// webview new-window requests, which are never navigated in-place.
	OpenExternal(ctx context.Context, url string) error
}

// LoginKeyProvider supplies the opaque auth token injected into shown URLs.
type LoginKeyProvider interface {
	CurrentLoginKey() string
}

// LoginKeyFunc adapts a plain function to LoginKeyProvider.
type LoginKeyFunc func() string

// CurrentLoginKey implements LoginKeyProvider.
func (f LoginKeyFunc) CurrentLoginKey() string { return f() }
