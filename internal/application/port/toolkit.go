// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the window control loop to
// remain independent of specific implementations (GTK, WebKit, systray, etc.).
package port

import "context"

// NativeHandle is an opaque reference to a toolkit object. It exists so that
// handles can cross the port boundary without the application layer importing
// toolkit packages.
type NativeHandle interface {
	// GoPointer returns the underlying native pointer for toolkit interop.
	GoPointer() uintptr
}

// FrameSpec describes the native top-level window to create.
type FrameSpec struct {
	Title  string
	Width  int
	Height int
	Hidden bool
	// IconPath is resolved against the application resource directory.
	IconPath string
	// MenuBar, when non-nil, is attached to the frame at creation time.
	MenuBar NativeHandle
}

// FrameCallbacks defines handlers for native frame events. Implementations
// must invoke these from the toolkit's event dispatch, never concurrently
// with each other.
type FrameCallbacks struct {
	// OnCloseRequest is called when the user asks to close the window.
	// The frame itself does not hide or destroy anything; the decision is
	// left entirely to the callback.
	OnCloseRequest func()
}

// Frame is the port interface for a native top-level window.
type Frame interface {
	// SetTitle updates the window title.
	SetTitle(title string)

	// Present raises and focuses the window.
	Present()

	// Hide makes the window invisible without destroying it.
	Hide()

	// Iconify minimizes the window; Deiconify restores it.
	Iconify()
	Deiconify()

	// SetCallbacks registers frame event handlers. Pass nil to clear.
	SetCallbacks(callbacks *FrameCallbacks)

	// Handle returns the opaque native handle.
	Handle() NativeHandle

	// Destroy releases the native window. The frame must not be used after.
	Destroy()
}

// WebViewCallbacks defines handlers for webview events.
type WebViewCallbacks struct {
	// OnNewWindowRequest is called when page content asks for a new
	// window (target=_blank and friends). The webview itself does not
	// navigate; the callback decides what happens with the URL.
	OnNewWindowRequest func(uri string)
}

// WebView is the port interface for the embedded web-content renderer.
type WebView interface {
	// LoadURI navigates to the given URI.
	LoadURI(ctx context.Context, uri string) error

	// URI returns the current URI.
	URI() string

	// IsResponsive reports whether the renderer process is healthy. Used
	// by the rebuild watchdog as its liveness probe.
	IsResponsive() bool

	// SetCallbacks registers webview event handlers. Pass nil to clear.
	SetCallbacks(callbacks *WebViewCallbacks)

	// Handle returns the opaque native handle.
	Handle() NativeHandle

	// Destroy releases the renderer. The webview must not be used after.
	Destroy()
}

// Toolkit is the port interface for the host GUI library. All methods are
// assumed synchronous and fast; they are called from the window actor's
// handler goroutine.
type Toolkit interface {
	// CreateFrame creates a native top-level window.
	CreateFrame(ctx context.Context, spec FrameSpec) (Frame, error)

	// CreateWebView creates a renderer embedded in the given frame,
	// replacing any renderer previously embedded there.
	CreateWebView(ctx context.Context, frame Frame) (WebView, error)

	// NeedsRebuildWatchdog reports whether this platform requires the
	// periodic webview health check and forced rebuild heuristic.
	NeedsRebuildWatchdog() bool
}
