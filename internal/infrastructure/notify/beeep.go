// Package notify implements the notification port on gen2brain/beeep,
// delivering OS notifications without a toolkit notification surface.
//
// beeep notifications are fire-and-forget: the OS gives no click or dismiss
// feedback, so the event handler registered on the Notifier never fires.
// Notification callbacks only work with toolkits that surface activation
// (the GTK adapter does).
package notify

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/deskshell/deskshell/internal/logging"
	"github.com/gen2brain/beeep"
)

// Notifier implements port.Notifier on beeep.
type Notifier struct {
	// iconPath is passed to every notification.
	iconPath string

	counter atomic.Uintptr
}

// New creates a beeep-backed notifier. iconPath may be empty.
func New(iconPath string) *Notifier {
	return &Notifier{iconPath: iconPath}
}

// Create allocates a notification bound to title and kind. Display happens
// on Show.
func (n *Notifier) Create(ctx context.Context, title string, kind port.NotificationKind) (port.NativeNotification, error) {
	log := logging.FromContext(ctx)

	notification := &beeepNotification{
		notifier: n,
		title:    title,
		kind:     kind,
		id:       n.counter.Add(1),
	}

	log.Debug().Str("title", title).Str("kind", kind.String()).Msg("beeep notification created")
	return notification, nil
}

// SetEventHandler is accepted for interface compliance; beeep cannot
// observe notification interactions, so the handler is never invoked.
func (n *Notifier) SetEventHandler(func(port.NativeNotification, port.NotifyEvent)) {}

type beeepNotification struct {
	notifier *Notifier
	title    string
	kind     port.NotificationKind
	id       uintptr
}

// Show displays the message. Re-showing sends a fresh OS notification; most
// desktops coalesce on app name. Timeout policies are left to the desktop
// (beeep exposes no duration control).
func (b *beeepNotification) Show(ctx context.Context, message string, _ port.NotifyTimeout) error {
	var err error
	switch b.kind {
	case port.NotificationError, port.NotificationWarning:
		err = beeep.Alert(b.title, message, b.notifier.iconPath)
	default:
		err = beeep.Notify(b.title, message, b.notifier.iconPath)
	}
	if err != nil {
		return fmt.Errorf("beeep notify: %w", err)
	}
	return nil
}

func (b *beeepNotification) Handle() port.NativeHandle {
	return syntheticHandle(b.id)
}

func (b *beeepNotification) Close(context.Context) {}

// syntheticHandle stands in for a native pointer; beeep exposes none, but
// the registry needs a stable identity per notification.
type syntheticHandle uintptr

func (h syntheticHandle) GoPointer() uintptr { return uintptr(h) }
