package gtk

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"
)

// frame implements port.Frame on a gtk.ApplicationWindow.
type frame struct {
	win    *gtk.ApplicationWindow
	logger zerolog.Logger

	mu        sync.Mutex
	callbacks *port.FrameCallbacks
	destroyed bool
}

func (f *frame) connectSignals() {
	f.win.ConnectCloseRequest(func() bool {
		f.mu.Lock()
		callbacks := f.callbacks
		f.mu.Unlock()

		if callbacks != nil && callbacks.OnCloseRequest != nil {
			callbacks.OnCloseRequest()
		}
		// The close decision belongs to the window actor; stop the
		// default destroy.
		return true
	})
}

func (f *frame) SetTitle(title string) {
	f.win.SetTitle(title)
}

func (f *frame) Present() {
	f.win.Present()
}

func (f *frame) Hide() {
	f.win.SetVisible(false)
}

func (f *frame) Iconify() {
	f.win.Minimize()
}

func (f *frame) Deiconify() {
	f.win.Unminimize()
	f.win.Present()
}

func (f *frame) SetCallbacks(callbacks *port.FrameCallbacks) {
	f.mu.Lock()
	f.callbacks = callbacks
	f.mu.Unlock()
}

func (f *frame) Handle() port.NativeHandle {
	return objectHandle(f.win)
}

func (f *frame) Destroy() {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	f.destroyed = true
	f.mu.Unlock()

	f.win.Destroy()
	f.logger.Debug().Msg("frame destroyed")
}

// iconName derives the icon theme name from a file path.
func iconName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var _ port.Frame = (*frame)(nil)
