package port

import "context"

// MenuItemSpec describes one entry of a menu descriptor.
type MenuItemSpec struct {
	Label string
	// Separator renders a divider; Label is ignored when set.
	Separator bool
	// OnSelect runs when the item is activated. Invoked by the sub-actor
	// on its own dispatch, never by the window actor.
	OnSelect func()
	// Items, when non-empty, makes this entry a submenu.
	Items []MenuItemSpec
}

// MenuSpec is the descriptor for a menu bar or tray icon menu.
type MenuSpec struct {
	Items []MenuItemSpec
}

// TrayCallbacks defines handlers for tray icon events.
type TrayCallbacks struct {
	// OnLeftClick and OnRightClick fire on tray icon activation. The tray
	// does not pop its menu by itself; the window actor forwards a
	// PopupMenu request back, keeping click routing observable.
	OnLeftClick  func()
	OnRightClick func()
}

// Tray is the port interface for the menu/taskbar sub-component. It is
// independently supervised and owns its native handles; the window actor
// only starts it, reads its handles at construction time, and forwards
// popup requests.
type Tray interface {
	// Start brings up the sub-component. Must be called before any other
	// method.
	Start(ctx context.Context) error

	// MenuBarHandle returns the native menu-bar handle to attach to the
	// frame, or nil if the descriptor had no menubar.
	MenuBarHandle() NativeHandle

	// TaskbarHandle returns the native tray-icon handle, or nil if the
	// descriptor had no icon menu.
	TaskbarHandle() NativeHandle

	// SetCallbacks registers tray event handlers. Pass nil to clear.
	SetCallbacks(callbacks *TrayCallbacks)

	// PopupMenu shows the tray popup menu. The sub-component owns the
	// popup logic.
	PopupMenu()

	// Stop tears the sub-component down.
	Stop()
}
