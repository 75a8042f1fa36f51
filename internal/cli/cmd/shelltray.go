package cmd

import (
	"context"

	"github.com/deskshell/deskshell/internal/application/port"
	gtkadapter "github.com/deskshell/deskshell/internal/infrastructure/gtk"
	"github.com/deskshell/deskshell/internal/infrastructure/tray"
)

// shellTray combines the two menu surfaces behind the single tray port: the
// in-window menu bar comes from the GTK adapter's gio menu model, the
// taskbar icon from the systray adapter. Either half may be absent.
type shellTray struct {
	menuBar *gtkadapter.MenuHandle
	icon    *tray.Tray
}

func newShellTray(toolkit *gtkadapter.Toolkit, menuBar *port.MenuSpec, icon *tray.Tray) *shellTray {
	return &shellTray{
		menuBar: gtkadapter.NewMenuBar(toolkit, menuBar),
		icon:    icon,
	}
}

func (s *shellTray) Start(ctx context.Context) error {
	if s.icon != nil {
		return s.icon.Start(ctx)
	}
	return nil
}

func (s *shellTray) MenuBarHandle() port.NativeHandle {
	if s.menuBar == nil {
		return nil
	}
	return s.menuBar
}

func (s *shellTray) TaskbarHandle() port.NativeHandle {
	if s.icon == nil {
		return nil
	}
	return s.icon.TaskbarHandle()
}

func (s *shellTray) SetCallbacks(callbacks *port.TrayCallbacks) {
	if s.icon != nil {
		s.icon.SetCallbacks(callbacks)
	}
}

func (s *shellTray) PopupMenu() {
	if s.icon != nil {
		s.icon.PopupMenu()
	}
}

func (s *shellTray) Stop() {
	if s.icon != nil {
		s.icon.Stop()
	}
}

var _ port.Tray = (*shellTray)(nil)
