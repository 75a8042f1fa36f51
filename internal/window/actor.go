package window

import (
	"context"
	"fmt"
	"time"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/domain/url"
	"github.com/deskshell/deskshell/internal/logging"
	"github.com/rs/zerolog"
)

// Window is the actor owning one native window. All mutable state below the
// mailbox is touched exclusively by the run goroutine; public methods only
// post messages.
type Window struct {
	opts Options
	deps Deps

	mailbox chan message
	stopped chan struct{}

	ctx    context.Context
	logger zerolog.Logger

	// Actor-owned state. Never read or written outside run().
	frame     port.Frame
	webview   port.WebView
	tray      port.Tray
	title     string
	lastURL   string
	presented bool

	notifications *notificationRegistry
	watchdog      rebuildWatchdog
	ticker        *time.Ticker
	tickerStop    chan struct{}
}

// Start validates options, builds the native window synchronously (frame,
// optional menu/tray, webview), and launches the actor goroutine. The
// returned Window is registered with nothing; callers that want lookup by
// id register it themselves.
func Start(ctx context.Context, opts Options, deps Deps) (*Window, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	opts = opts.withDefaults()

	logger := logging.FromContext(ctx).With().
		Str("component", "window").
		Str("window_id", opts.ID).
		Logger()
	ctx = logging.WithContext(ctx, logger)

	w := &Window{
		opts:    opts,
		deps:    deps,
		mailbox: make(chan message, defaultMailboxSize),
		stopped: make(chan struct{}),
		ctx:     ctx,
		logger:  logger,
		title:   opts.Title,
	}

	if err := w.restoreSnapshot(ctx); err != nil {
		logger.Warn().Err(err).Msg("window state restore failed, using defaults")
	}

	if err := w.construct(ctx); err != nil {
		return nil, err
	}

	w.notifications = newNotificationRegistry(deps.Notifier, logger)
	if deps.Notifier != nil {
		deps.Notifier.SetEventHandler(func(n port.NativeNotification, ev port.NotifyEvent) {
			w.post(notifyEventMsg{native: n, event: ev})
		})
	}

	if deps.Toolkit.NeedsRebuildWatchdog() {
		w.startWatchdogTimer()
	}

	go w.run()

	// A visible window with a configured home URL navigates immediately.
	// The message is posted before Start returns, so it is ordered ahead
	// of any later command.
	if !opts.Hidden && !opts.URL.IsZero() {
		w.post(showMsg{})
	}

	logger.Info().
		Int("width", w.opts.Width).
		Int("height", w.opts.Height).
		Bool("tray", w.tray != nil).
		Msg("window started")

	return w, nil
}

// restoreSnapshot overlays persisted geometry and last URL onto the options.
func (w *Window) restoreSnapshot(ctx context.Context) error {
	if w.deps.Store == nil {
		return nil
	}

	snapshot, err := w.deps.Store.Load(ctx, w.opts.ID)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return nil
	}

	if snapshot.Width > 0 && snapshot.Height > 0 {
		w.opts.Width = snapshot.Width
		w.opts.Height = snapshot.Height
	}
	w.lastURL = snapshot.LastURL

	w.logger.Debug().
		Str("last_url", snapshot.LastURL).
		Msg("window state restored")

	return nil
}

// construct builds tray, frame, and webview in that order: the frame needs
// the menu-bar handle at creation time.
func (w *Window) construct(ctx context.Context) error {
	if (w.opts.MenuBar != nil || w.opts.IconMenu != nil) && w.deps.NewTray != nil {
		tray, err := w.deps.NewTray(w.opts.MenuBar, w.opts.IconMenu)
		if err != nil {
			return fmt.Errorf("create tray: %w", err)
		}
		if err := tray.Start(ctx); err != nil {
			return fmt.Errorf("start tray: %w", err)
		}
		tray.SetCallbacks(&port.TrayCallbacks{
			OnLeftClick:  func() { w.post(trayClickMsg{}) },
			OnRightClick: func() { w.post(trayClickMsg{right: true}) },
		})
		w.tray = tray
	}

	spec := port.FrameSpec{
		Title:    w.opts.Title,
		Width:    w.opts.Width,
		Height:   w.opts.Height,
		Hidden:   w.opts.Hidden,
		IconPath: w.opts.Icon,
	}
	if w.tray != nil {
		spec.MenuBar = w.tray.MenuBarHandle()
	}

	frame, err := w.deps.Toolkit.CreateFrame(ctx, spec)
	if err != nil {
		w.stopTray()
		return fmt.Errorf("create frame: %w", err)
	}
	frame.SetCallbacks(&port.FrameCallbacks{
		OnCloseRequest: func() { w.post(closeRequestedMsg{}) },
	})
	w.frame = frame
	w.presented = !w.opts.Hidden

	webview, err := w.deps.Toolkit.CreateWebView(ctx, frame)
	if err != nil {
		frame.Destroy()
		w.stopTray()
		return fmt.Errorf("create webview: %w", err)
	}
	w.attachWebView(webview)

	return nil
}

// attachWebView stores the webview and wires its callbacks. Used both at
// construction and after a rebuild.
func (w *Window) attachWebView(webview port.WebView) {
	webview.SetCallbacks(&port.WebViewCallbacks{
		OnNewWindowRequest: func(uri string) { w.post(newWindowMsg{uri: uri}) },
	})
	w.webview = webview
}

// --- Public API. Fire-and-forget unless noted. ---

// ID returns the window's logical name.
func (w *Window) ID() string { return w.opts.ID }

// Show navigates to the default target: last shown URL, falling back to the
// configured home URL.
func (w *Window) Show() {
	w.post(showMsg{})
}

// ShowURL navigates to an explicit URL.
func (w *Window) ShowURL(raw string) {
	w.post(showMsg{target: url.Literal(raw), explicit: true})
}

// SetTitle updates the window title. Idempotent: an unchanged title issues
// no toolkit call.
func (w *Window) SetTitle(title string) {
	w.post(setTitleMsg{title: title})
}

// Iconize minimizes the window, or restores it when restore is true.
func (w *Window) Iconize(restore bool) {
	w.post(iconizeMsg{restore: restore})
}

// RebuildWebview destroys and recreates the embedded renderer in place.
func (w *Window) RebuildWebview() {
	w.post(rebuildMsg{})
}

// ShowNotification displays text as a native notification. See
// NotifyOptions for identity and callback semantics.
func (w *Window) ShowNotification(text string, opts NotifyOptions) {
	w.post(notifyMsg{text: text, opts: opts})
}

// Stop tears the actor down regardless of tray presence.
func (w *Window) Stop() {
	w.post(stopMsg{})
}

// Done is closed when the actor has terminated.
func (w *Window) Done() <-chan struct{} {
	return w.stopped
}

// FrameHandle returns the native frame handle. Synchronous request/reply
// through the mailbox, so the reply reflects all previously posted inputs.
func (w *Window) FrameHandle(ctx context.Context) (port.Frame, error) {
	reply := make(chan port.Frame, 1)
	if !w.post(frameHandleMsg{reply: reply}) {
		return nil, ErrStopped
	}
	select {
	case frame := <-reply:
		return frame, nil
	case <-w.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// WebviewHandle returns the native webview handle, synchronously.
func (w *Window) WebviewHandle(ctx context.Context) (port.WebView, error) {
	reply := make(chan port.WebView, 1)
	if !w.post(webviewHandleMsg{reply: reply}) {
		return nil, ErrStopped
	}
	select {
	case webview := <-reply:
		return webview, nil
	case <-w.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// post enqueues a message, returning false once the actor has stopped.
func (w *Window) post(msg message) bool {
	select {
	case <-w.stopped:
		return false
	default:
	}
	select {
	case w.mailbox <- msg:
		return true
	case <-w.stopped:
		return false
	}
}

// --- Actor loop ---

func (w *Window) run() {
	for {
		select {
		case <-w.stopped:
			return
		case msg := <-w.mailbox:
			if terminate := w.handle(msg); terminate {
				w.terminate()
				return
			}
		}
	}
}

// handle applies one input against the actor state. It returns true when
// the actor must terminate.
func (w *Window) handle(msg message) bool {
	switch m := msg.(type) {
	case showMsg:
		w.handleShow(m)
	case setTitleMsg:
		w.handleSetTitle(m.title)
	case iconizeMsg:
		w.handleIconize(m.restore)
	case rebuildMsg:
		w.rebuildWebview()
	case notifyMsg:
		w.handleNotify(m)
	case frameHandleMsg:
		m.reply <- w.frame
	case webviewHandleMsg:
		m.reply <- w.webview
	case closeRequestedMsg:
		return w.handleCloseRequested()
	case trayClickMsg:
		w.handleTrayClick(m.right)
	case newWindowMsg:
		w.handleNewWindow(m.uri)
	case notifyEventMsg:
		w.notifications.dispatch(m.native, m.event)
	case watchdogTickMsg:
		w.handleWatchdogTick()
	case stopMsg:
		return true
	default:
		w.logger.Warn().Type("message", msg).Msg("unhandled mailbox message")
	}
	return false
}

// handleShow resolves the effective target, injects the login key, and
// navigates. The very first show-with-default also raises the frame.
//
// A panicking URL callback is caught and logged here, leaving state
// unchanged; the alternative (crash the actor and rely on supervisory
// restart) was rejected to keep the window alive for tray-driven apps.
func (w *Window) handleShow(m showMsg) {
	target := m.target
	if !m.explicit {
		switch {
		case w.lastURL != "":
			target = url.Literal(w.lastURL)
		default:
			target = w.opts.URL
		}
	}

	prepared, ok, err := w.prepare(target)
	if err != nil {
		w.logger.Error().Err(err).Msg("url callback failed, show aborted")
		return
	}

	if ok {
		if err := w.webview.LoadURI(w.ctx, prepared); err != nil {
			w.logger.Error().Err(err).Str("url", prepared).Msg("navigation failed")
		} else {
			w.lastURL = prepared
			w.saveSnapshot()
		}
	}

	if !m.explicit && !w.presented {
		w.frame.Present()
		w.presented = true
	}
}

// prepare wraps url.Prepare with panic containment for callback targets.
func (w *Window) prepare(target url.Target) (prepared string, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			prepared, ok = "", false
			err = fmt.Errorf("url callback panicked: %v", rec)
		}
	}()
	prepared, ok = url.Prepare(target, w.deps.loginKey())
	return prepared, ok, nil
}

func (w *Window) handleSetTitle(title string) {
	if title == w.title {
		return
	}
	w.frame.SetTitle(title)
	w.title = title
}

func (w *Window) handleIconize(restore bool) {
	if restore {
		w.frame.Deiconify()
	} else {
		w.frame.Iconify()
	}
}

// rebuildWebview swaps the renderer in place, keeping the frame, and
// re-shows the last URL.
func (w *Window) rebuildWebview() {
	w.logger.Info().Msg("rebuilding webview")

	w.webview.Destroy()

	webview, err := w.deps.Toolkit.CreateWebView(w.ctx, w.frame)
	if err != nil {
		w.logger.Error().Err(err).Msg("webview rebuild failed")
		return
	}
	w.attachWebView(webview)

	if w.lastURL != "" {
		if err := w.webview.LoadURI(w.ctx, w.lastURL); err != nil {
			w.logger.Error().Err(err).Str("url", w.lastURL).Msg("navigation after rebuild failed")
		}
	}
}

func (w *Window) handleNotify(m notifyMsg) {
	if err := w.notifications.show(w.ctx, m.text, w.title, m.opts); err != nil {
		w.logger.Error().Err(err).Msg("show notification failed")
	}
}

// handleCloseRequested hides the frame. Without a tray icon the hidden
// window has no way back, so the actor terminates; with one, the
// application keeps running in the background.
func (w *Window) handleCloseRequested() bool {
	w.frame.Hide()
	w.presented = false

	if w.taskbarPresent() {
		w.logger.Debug().Msg("window hidden, tray keeps actor alive")
		return false
	}

	w.logger.Info().Msg("window closed, stopping actor")
	return true
}

func (w *Window) taskbarPresent() bool {
	return w.tray != nil && w.tray.TaskbarHandle() != nil
}

func (w *Window) handleTrayClick(right bool) {
	if w.tray == nil {
		w.logger.Error().Bool("right", right).Msg("tray click without tray sub-component")
		return
	}
	w.tray.PopupMenu()
}

// handleNewWindow sends webview-initiated new-window requests to the
// system's default browser; in-place navigation never happens here.
func (w *Window) handleNewWindow(uri string) {
	if w.deps.Desktop == nil {
		w.logger.Warn().Str("url", uri).Msg("no desktop integration, dropping new-window request")
		return
	}
	if err := w.deps.Desktop.OpenExternal(w.ctx, uri); err != nil {
		w.logger.Error().Err(err).Str("url", uri).Msg("external browser open failed")
	}
}

func (w *Window) handleWatchdogTick() {
	if w.watchdog.done() {
		return
	}

	healthy := w.webview.IsResponsive()
	if !w.watchdog.observe(healthy) {
		return
	}

	// Second consecutive unhealthy probe: rebuild once, then retire the
	// timer.
	w.logger.Warn().Msg("webview unresponsive, watchdog rebuilding")
	w.stopWatchdogTimer()
	w.rebuildWebview()
}

// --- Watchdog timer ---

func (w *Window) startWatchdogTimer() {
	w.ticker = time.NewTicker(w.opts.WatchdogInterval)
	w.tickerStop = make(chan struct{})

	go func(ticker *time.Ticker, stop chan struct{}) {
		for {
			select {
			case <-ticker.C:
				w.post(watchdogTickMsg{})
			case <-stop:
				return
			case <-w.stopped:
				return
			}
		}
	}(w.ticker, w.tickerStop)
}

func (w *Window) stopWatchdogTimer() {
	if w.ticker == nil {
		return
	}
	w.ticker.Stop()
	close(w.tickerStop)
	w.ticker = nil
	w.tickerStop = nil
}

// --- Teardown ---

func (w *Window) saveSnapshot() {
	if w.deps.Store == nil {
		return
	}
	snapshot := port.WindowSnapshot{
		WindowID: w.opts.ID,
		LastURL:  w.lastURL,
		Width:    w.opts.Width,
		Height:   w.opts.Height,
	}
	if err := w.deps.Store.Save(w.ctx, snapshot); err != nil {
		w.logger.Warn().Err(err).Msg("window state save failed")
	}
}

func (w *Window) stopTray() {
	if w.tray != nil {
		w.tray.Stop()
		w.tray = nil
	}
}

// terminate releases everything the actor owns. Runs on the actor goroutine
// as its final act.
func (w *Window) terminate() {
	w.stopWatchdogTimer()
	w.notifications.closeAll(w.ctx)
	w.stopTray()

	if w.webview != nil {
		w.webview.Destroy()
		w.webview = nil
	}
	if w.frame != nil {
		w.frame.Destroy()
		w.frame = nil
	}

	close(w.stopped)
	w.logger.Info().Msg("window actor stopped")
}
