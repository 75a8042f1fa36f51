package gtk

import (
	"context"
	"fmt"
	"sync"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/logging"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"
)

// CreateWebView embeds a WebKit view as the frame's child, replacing any
// previous child. This is what the rebuild operation relies on: destroy the
// old view, create a new one in the same frame.
func (t *Toolkit) CreateWebView(ctx context.Context, f port.Frame) (port.WebView, error) {
	host, ok := f.(*frame)
	if !ok {
		return nil, fmt.Errorf("frame was not created by this toolkit")
	}

	view := webkit.NewWebView()
	if view == nil {
		return nil, fmt.Errorf("failed to create webkit webview")
	}

	wv := &webView{
		view:   view,
		host:   host,
		logger: t.logger.With().Str("widget", "webview").Logger(),
	}
	wv.connectSignals()

	view.SetVExpand(true)
	view.SetHExpand(true)
	host.win.SetChild(view)

	logging.FromContext(ctx).Debug().Msg("webview created")

	return wv, nil
}

// webView implements port.WebView on webkit.WebView.
type webView struct {
	view   *webkit.WebView
	host   *frame
	logger zerolog.Logger

	mu        sync.Mutex
	callbacks *port.WebViewCallbacks
	destroyed bool
}

func (wv *webView) connectSignals() {
	// New-window navigations (target=_blank and window.open) are refused
	// in-place and surfaced to the actor, which sends them to the
	// external browser.
	wv.view.ConnectDecidePolicy(func(decision webkit.PolicyDecisioner, decisionType webkit.PolicyDecisionType) bool {
		if decisionType != webkit.PolicyDecisionTypeNewWindowAction {
			return false
		}

		nav, ok := decision.(*webkit.NavigationPolicyDecision)
		if !ok {
			return false
		}

		uri := nav.NavigationAction().Request().URI()
		nav.Ignore()

		wv.mu.Lock()
		callbacks := wv.callbacks
		wv.mu.Unlock()

		if callbacks != nil && callbacks.OnNewWindowRequest != nil {
			callbacks.OnNewWindowRequest(uri)
		}
		return true
	})
}

func (wv *webView) LoadURI(ctx context.Context, uri string) error {
	wv.mu.Lock()
	destroyed := wv.destroyed
	wv.mu.Unlock()

	if destroyed {
		return fmt.Errorf("webview is destroyed")
	}

	wv.view.LoadURI(uri)
	logging.FromContext(ctx).Debug().Str("url", uri).Msg("webview navigating")
	return nil
}

func (wv *webView) URI() string {
	return wv.view.URI()
}

// IsResponsive probes the web process. WebKit flags an unresponsive web
// process when it stops servicing IPC; that flag is the watchdog's input.
func (wv *webView) IsResponsive() bool {
	wv.mu.Lock()
	destroyed := wv.destroyed
	wv.mu.Unlock()

	if destroyed {
		return false
	}
	return wv.view.IsWebProcessResponsive()
}

func (wv *webView) SetCallbacks(callbacks *port.WebViewCallbacks) {
	wv.mu.Lock()
	wv.callbacks = callbacks
	wv.mu.Unlock()
}

func (wv *webView) Handle() port.NativeHandle {
	return objectHandle(wv.view)
}

func (wv *webView) Destroy() {
	wv.mu.Lock()
	if wv.destroyed {
		wv.mu.Unlock()
		return
	}
	wv.destroyed = true
	wv.mu.Unlock()

	// Detach from the frame; the view is finalized once unreferenced.
	if child := wv.host.win.Child(); child != nil {
		if _, isView := child.(*webkit.WebView); isView {
			wv.host.win.SetChild((gtk.Widgetter)(nil))
		}
	}
	wv.logger.Debug().Msg("webview destroyed")
}

var _ port.WebView = (*webView)(nil)
