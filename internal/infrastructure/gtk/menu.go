package gtk

import (
	"fmt"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// MenuHandle is the native menu-bar handle produced by this adapter.
// CreateFrame recognizes it in FrameSpec.MenuBar and attaches the model.
type MenuHandle struct {
	model *gio.Menu
	app   *gtk.Application
}

// GoPointer implements port.NativeHandle.
func (m *MenuHandle) GoPointer() uintptr {
	return objectHandle(m.model).GoPointer()
}

// NewMenuBar builds a gio menu model from a descriptor. Item activation is
// wired through per-item application actions invoking the descriptor's
// OnSelect.
func NewMenuBar(toolkit *Toolkit, spec *port.MenuSpec) *MenuHandle {
	if spec == nil {
		return nil
	}

	app := toolkit.App()
	model := gio.NewMenu()
	appendItems(app, model, "menubar", spec.Items)

	return &MenuHandle{model: model, app: app}
}

func appendItems(app *gtk.Application, model *gio.Menu, prefix string, items []port.MenuItemSpec) {
	section := model
	for i, item := range items {
		switch {
		case item.Separator:
			// gio menus express separators as section breaks.
			section = gio.NewMenu()
			model.AppendSection("", section)
		case len(item.Items) > 0:
			submenu := gio.NewMenu()
			appendItems(app, submenu, fmt.Sprintf("%s-%d", prefix, i), item.Items)
			section.AppendSubmenu(item.Label, submenu)
		default:
			actionName := fmt.Sprintf("%s-%d", prefix, i)
			if item.OnSelect != nil {
				onSelect := item.OnSelect
				action := gio.NewSimpleAction(actionName, nil)
				action.ConnectActivate(func(*glib.Variant) { onSelect() })
				app.AddAction(action)
			}
			section.Append(item.Label, "app."+actionName)
		}
	}
}
