package window

import (
	"context"
	"sync"

	"github.com/deskshell/deskshell/internal/application/port"
)

type fakeHandle uintptr

func (h fakeHandle) GoPointer() uintptr { return uintptr(h) }

// fakeFrame records toolkit calls in order so tests can assert sequencing.
type fakeFrame struct {
	mu        sync.Mutex
	calls     []string
	titles    []string
	presents  int
	hides     int
	callbacks *port.FrameCallbacks
	destroyed bool
}

func (f *fakeFrame) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeFrame) SetTitle(title string) {
	f.mu.Lock()
	f.titles = append(f.titles, title)
	f.calls = append(f.calls, "settitle")
	f.mu.Unlock()
}

func (f *fakeFrame) Present() {
	f.mu.Lock()
	f.presents++
	f.calls = append(f.calls, "present")
	f.mu.Unlock()
}

func (f *fakeFrame) Hide() {
	f.mu.Lock()
	f.hides++
	f.calls = append(f.calls, "hide")
	f.mu.Unlock()
}

func (f *fakeFrame) Iconify()   { f.record("iconify") }
func (f *fakeFrame) Deiconify() { f.record("deiconify") }

func (f *fakeFrame) SetCallbacks(callbacks *port.FrameCallbacks) {
	f.mu.Lock()
	f.callbacks = callbacks
	f.mu.Unlock()
}

func (f *fakeFrame) Handle() port.NativeHandle { return fakeHandle(0xf0) }

func (f *fakeFrame) Destroy() {
	f.mu.Lock()
	f.destroyed = true
	f.calls = append(f.calls, "destroy")
	f.mu.Unlock()
}

func (f *fakeFrame) triggerClose() {
	f.mu.Lock()
	callbacks := f.callbacks
	f.mu.Unlock()
	callbacks.OnCloseRequest()
}

func (f *fakeFrame) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeFrame) titleCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

func (f *fakeFrame) presentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

func (f *fakeFrame) hideCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hides
}

// fakeWebView records navigations and serves the health probe.
type fakeWebView struct {
	mu        sync.Mutex
	id        int
	loads     []string
	healthy   bool
	callbacks *port.WebViewCallbacks
	destroyed bool
}

func (w *fakeWebView) LoadURI(_ context.Context, uri string) error {
	w.mu.Lock()
	w.loads = append(w.loads, uri)
	w.mu.Unlock()
	return nil
}

func (w *fakeWebView) URI() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.loads) == 0 {
		return ""
	}
	return w.loads[len(w.loads)-1]
}

func (w *fakeWebView) IsResponsive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.healthy
}

func (w *fakeWebView) setHealthy(healthy bool) {
	w.mu.Lock()
	w.healthy = healthy
	w.mu.Unlock()
}

func (w *fakeWebView) SetCallbacks(callbacks *port.WebViewCallbacks) {
	w.mu.Lock()
	w.callbacks = callbacks
	w.mu.Unlock()
}

func (w *fakeWebView) Handle() port.NativeHandle { return fakeHandle(0xe0 + uintptr(w.id)) }

func (w *fakeWebView) Destroy() {
	w.mu.Lock()
	w.destroyed = true
	w.mu.Unlock()
}

func (w *fakeWebView) isDestroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

func (w *fakeWebView) loadedURIs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.loads...)
}

func (w *fakeWebView) triggerNewWindow(uri string) {
	w.mu.Lock()
	callbacks := w.callbacks
	w.mu.Unlock()
	callbacks.OnNewWindowRequest(uri)
}

// fakeToolkit hands out fake frames and webviews.
type fakeToolkit struct {
	mu            sync.Mutex
	frames        []*fakeFrame
	webviews      []*fakeWebView
	needsWatchdog bool
}

func (t *fakeToolkit) CreateFrame(context.Context, port.FrameSpec) (port.Frame, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	frame := &fakeFrame{}
	t.frames = append(t.frames, frame)
	return frame, nil
}

func (t *fakeToolkit) CreateWebView(context.Context, port.Frame) (port.WebView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	webview := &fakeWebView{id: len(t.webviews), healthy: true}
	t.webviews = append(t.webviews, webview)
	return webview, nil
}

func (t *fakeToolkit) NeedsRebuildWatchdog() bool { return t.needsWatchdog }

func (t *fakeToolkit) frame() *fakeFrame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames[0]
}

func (t *fakeToolkit) webview(i int) *fakeWebView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.webviews[i]
}

func (t *fakeToolkit) webviewCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.webviews)
}

// fakeTray is the menu/taskbar sub-actor stand-in.
type fakeTray struct {
	mu        sync.Mutex
	taskbar   bool
	started   bool
	stopped   bool
	popups    int
	callbacks *port.TrayCallbacks
}

func (t *fakeTray) Start(context.Context) error {
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()
	return nil
}

func (t *fakeTray) MenuBarHandle() port.NativeHandle { return nil }

func (t *fakeTray) TaskbarHandle() port.NativeHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.taskbar {
		return nil
	}
	return fakeHandle(0xd0)
}

func (t *fakeTray) SetCallbacks(callbacks *port.TrayCallbacks) {
	t.mu.Lock()
	t.callbacks = callbacks
	t.mu.Unlock()
}

func (t *fakeTray) PopupMenu() {
	t.mu.Lock()
	t.popups++
	t.mu.Unlock()
}

func (t *fakeTray) Stop() {
	t.mu.Lock()
	t.stopped = true
	t.mu.Unlock()
}

func (t *fakeTray) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *fakeTray) popupCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.popups
}

func (t *fakeTray) triggerLeftClick() {
	t.mu.Lock()
	callbacks := t.callbacks
	t.mu.Unlock()
	callbacks.OnLeftClick()
}

// fakeNotifier and fakeNotification implement the notification port.
type fakeNotifier struct {
	mu      sync.Mutex
	created []*fakeNotification
	handler func(port.NativeNotification, port.NotifyEvent)
}

func (n *fakeNotifier) Create(_ context.Context, title string, kind port.NotificationKind) (port.NativeNotification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	notification := &fakeNotification{title: title, kind: kind, id: uintptr(0xa0 + len(n.created))}
	n.created = append(n.created, notification)
	return notification, nil
}

func (n *fakeNotifier) SetEventHandler(handler func(port.NativeNotification, port.NotifyEvent)) {
	n.mu.Lock()
	n.handler = handler
	n.mu.Unlock()
}

func (n *fakeNotifier) createdCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.created)
}

func (n *fakeNotifier) notification(i int) *fakeNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.created[i]
}

func (n *fakeNotifier) emit(notification port.NativeNotification, event port.NotifyEvent) {
	n.mu.Lock()
	handler := n.handler
	n.mu.Unlock()
	handler(notification, event)
}

type fakeNotification struct {
	mu     sync.Mutex
	title  string
	kind   port.NotificationKind
	id     uintptr
	shows  []string
	closed bool
}

func (f *fakeNotification) Show(_ context.Context, message string, _ port.NotifyTimeout) error {
	f.mu.Lock()
	f.shows = append(f.shows, message)
	f.mu.Unlock()
	return nil
}

func (f *fakeNotification) Handle() port.NativeHandle { return fakeHandle(f.id) }

func (f *fakeNotification) Close(context.Context) {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeNotification) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeNotification) shownMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.shows...)
}

// fakeDesktop records external browser opens.
type fakeDesktop struct {
	mu     sync.Mutex
	opened []string
}

func (d *fakeDesktop) OpenExternal(_ context.Context, uri string) error {
	d.mu.Lock()
	d.opened = append(d.opened, uri)
	d.mu.Unlock()
	return nil
}

func (d *fakeDesktop) openedURIs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.opened...)
}

// fakeStore records snapshots.
type fakeStore struct {
	mu        sync.Mutex
	snapshots map[string]port.WindowSnapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{snapshots: make(map[string]port.WindowSnapshot)}
}

func (s *fakeStore) Load(_ context.Context, windowID string) (*port.WindowSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[windowID]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (s *fakeStore) Save(_ context.Context, snapshot port.WindowSnapshot) error {
	s.mu.Lock()
	s.snapshots[snapshot.WindowID] = snapshot
	s.mu.Unlock()
	return nil
}

func (s *fakeStore) saved(windowID string) (port.WindowSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[windowID]
	return snapshot, ok
}
