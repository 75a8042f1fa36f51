package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/window"
)

type stubHandle uintptr

func (h stubHandle) GoPointer() uintptr { return uintptr(h) }

type stubFrame struct {
	callbacks *port.FrameCallbacks
}

func (f *stubFrame) SetTitle(string)                      {}
func (f *stubFrame) Present()                             {}
func (f *stubFrame) Hide()                                {}
func (f *stubFrame) Iconify()                             {}
func (f *stubFrame) Deiconify()                           {}
func (f *stubFrame) SetCallbacks(cb *port.FrameCallbacks) { f.callbacks = cb }
func (f *stubFrame) Handle() port.NativeHandle            { return stubHandle(1) }
func (f *stubFrame) Destroy()                             {}

type stubWebView struct{}

func (stubWebView) LoadURI(context.Context, string) error { return nil }
func (stubWebView) URI() string                           { return "" }
func (stubWebView) IsResponsive() bool                    { return true }
func (stubWebView) SetCallbacks(*port.WebViewCallbacks)   {}
func (stubWebView) Handle() port.NativeHandle             { return stubHandle(2) }
func (stubWebView) Destroy()                              {}

type stubToolkit struct {
	frames []*stubFrame
}

func (t *stubToolkit) CreateFrame(context.Context, port.FrameSpec) (port.Frame, error) {
	frame := &stubFrame{}
	t.frames = append(t.frames, frame)
	return frame, nil
}

func (t *stubToolkit) CreateWebView(context.Context, port.Frame) (port.WebView, error) {
	return stubWebView{}, nil
}

func (t *stubToolkit) NeedsRebuildWatchdog() bool { return false }

func startWindow(t *testing.T, id string) (*window.Window, *stubToolkit) {
	t.Helper()
	toolkit := &stubToolkit{}
	w, err := window.Start(context.Background(), window.Options{ID: id, Hidden: true}, window.Deps{
		Toolkit: toolkit,
	})
	require.NoError(t, err)
	return w, toolkit
}

func TestRegisterAndLookup(t *testing.T) {
	reg := New(context.Background())
	w, _ := startWindow(t, "main")
	defer w.Stop()

	require.NoError(t, reg.Register(w))
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Lookup("main")
	require.True(t, ok)
	assert.Same(t, w, got)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegisterDuplicateID(t *testing.T) {
	reg := New(context.Background())
	first, _ := startWindow(t, "main")
	defer first.Stop()
	second, _ := startWindow(t, "main")
	defer second.Stop()

	require.NoError(t, reg.Register(first))

	err := reg.Register(second)
	var dup DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "main", dup.ID)
}

func TestStoppedWindowUnregistersItself(t *testing.T) {
	reg := New(context.Background())
	w, _ := startWindow(t, "main")

	require.NoError(t, reg.Register(w))

	w.Stop()
	<-w.Done()

	require.Eventually(t, func() bool {
		_, ok := reg.Lookup("main")
		return !ok && reg.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQuitStopsAllWindows(t *testing.T) {
	reg := New(context.Background())
	first, _ := startWindow(t, "main")
	second, _ := startWindow(t, "settings")

	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))

	reg.Quit()
	reg.Quit() // idempotent

	select {
	case <-reg.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("registry never finished quitting")
	}

	select {
	case <-first.Done():
	default:
		t.Fatal("first window still running after quit")
	}
	select {
	case <-second.Done():
	default:
		t.Fatal("second window still running after quit")
	}
}
