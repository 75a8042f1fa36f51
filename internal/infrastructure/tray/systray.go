// Package tray implements the menu/taskbar sub-component port on
// energye/systray. The sub-component owns its native handles; the window
// actor only starts it, reads handles, and forwards popup requests.
package tray

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/logging"
	"github.com/energye/systray"
	"github.com/rs/zerolog"
)

// Tray implements port.Tray. systray is process-global, so at most one Tray
// may be started per process; a second Start returns an error.
type Tray struct {
	iconMenu *port.MenuSpec
	iconData []byte
	tooltip  string

	mu        sync.Mutex
	callbacks *port.TrayCallbacks
	started   bool
	ready     chan struct{}

	// popup holds the systray.IMenu captured from the first click, used
	// to reopen the menu on demand.
	popup atomic.Value

	logger zerolog.Logger
}

var processTray atomic.Bool

// New creates a tray for the given icon menu descriptor. iconPath points at
// the tray icon image; a missing file leaves the platform default icon.
func New(ctx context.Context, iconMenu *port.MenuSpec, iconPath, tooltip string) *Tray {
	t := &Tray{
		iconMenu: iconMenu,
		tooltip:  tooltip,
		ready:    make(chan struct{}),
		logger:   logging.FromContext(ctx).With().Str("component", "tray").Logger(),
	}

	if iconPath != "" {
		data, err := os.ReadFile(iconPath)
		if err != nil {
			t.logger.Warn().Err(err).Str("path", iconPath).Msg("tray icon unreadable, using default")
		} else {
			t.iconData = data
		}
	}

	return t
}

// Start brings up the systray loop on its own goroutine and returns once
// the icon is ready.
func (t *Tray) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return fmt.Errorf("tray already started")
	}
	if !processTray.CompareAndSwap(false, true) {
		t.mu.Unlock()
		return fmt.Errorf("another tray is already running in this process")
	}
	t.started = true
	t.mu.Unlock()

	go systray.Run(t.onReady, t.onExit)

	select {
	case <-t.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Tray) onReady() {
	if len(t.iconData) > 0 {
		systray.SetIcon(t.iconData)
	}
	if t.tooltip != "" {
		systray.SetTooltip(t.tooltip)
	}

	if t.iconMenu != nil {
		buildMenu(t.iconMenu.Items)
	}

	systray.SetOnClick(func(menu systray.IMenu) {
		t.popup.Store(menu)
		t.forward(func(cb *port.TrayCallbacks) func() { return cb.OnLeftClick })
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		t.popup.Store(menu)
		t.forward(func(cb *port.TrayCallbacks) func() { return cb.OnRightClick })
	})

	t.logger.Debug().Msg("tray icon ready")
	close(t.ready)
}

func (t *Tray) onExit() {
	processTray.Store(false)
	t.logger.Debug().Msg("tray exited")
}

// buildMenu renders a menu descriptor into systray items. Item activation
// runs the descriptor's OnSelect on the systray dispatch goroutine.
func buildMenu(items []port.MenuItemSpec) {
	for _, item := range items {
		if item.Separator {
			systray.AddSeparator()
			continue
		}

		menuItem := systray.AddMenuItem(item.Label, item.Label)
		if item.OnSelect != nil {
			onSelect := item.OnSelect
			menuItem.Click(onSelect)
		}
		for _, sub := range item.Items {
			subItem := menuItem.AddSubMenuItem(sub.Label, sub.Label)
			if sub.OnSelect != nil {
				onSelect := sub.OnSelect
				subItem.Click(onSelect)
			}
		}
	}
}

func (t *Tray) forward(pick func(*port.TrayCallbacks) func()) {
	t.mu.Lock()
	callbacks := t.callbacks
	t.mu.Unlock()

	if callbacks == nil {
		return
	}
	if handler := pick(callbacks); handler != nil {
		handler()
	}
}

// SetCallbacks registers tray event handlers.
func (t *Tray) SetCallbacks(callbacks *port.TrayCallbacks) {
	t.mu.Lock()
	t.callbacks = callbacks
	t.mu.Unlock()
}

// MenuBarHandle returns nil: systray has no in-window menu bar. Menu bars
// are provided by the toolkit adapter instead.
func (t *Tray) MenuBarHandle() port.NativeHandle { return nil }

// TaskbarHandle returns a non-nil handle when an icon menu descriptor is
// present, which is what close semantics key on.
func (t *Tray) TaskbarHandle() port.NativeHandle {
	if t.iconMenu == nil {
		return nil
	}
	return trayHandle{}
}

// PopupMenu reopens the tray menu. systray pops the menu on click natively;
// this reuses the menu captured from the last click event.
func (t *Tray) PopupMenu() {
	if menu, ok := t.popup.Load().(systray.IMenu); ok && menu != nil {
		if err := menu.ShowMenu(); err != nil {
			t.logger.Warn().Err(err).Msg("tray popup failed")
		}
	}
}

// Stop tears the systray loop down.
func (t *Tray) Stop() {
	t.mu.Lock()
	started := t.started
	t.started = false
	t.mu.Unlock()

	if started {
		systray.Quit()
	}
}

type trayHandle struct{}

func (trayHandle) GoPointer() uintptr { return 1 }

var _ port.Tray = (*Tray)(nil)
