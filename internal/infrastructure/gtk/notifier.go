package gtk

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"
)

const notificationActionName = "notification-activated"

// Notifier implements port.Notifier on GApplication notifications. Clicking
// a notification activates an application action carrying the notification
// id, which is routed back as a NotifyClicked event. GNotification gives no
// dismiss feedback, so NotifyDismissed is never emitted by this adapter.
type Notifier struct {
	app    *gtk.Application
	logger zerolog.Logger

	mu      sync.Mutex
	handler func(port.NativeNotification, port.NotifyEvent)
	byID    map[string]*gtkNotification

	counter atomic.Uintptr
}

// NewNotifier creates a GApplication-backed notifier and installs its
// activation action on the application.
func NewNotifier(ctx context.Context, toolkit *Toolkit) *Notifier {
	n := &Notifier{
		app:    toolkit.App(),
		logger: toolkit.logger.With().Str("component", "gtk-notifier").Logger(),
		byID:   make(map[string]*gtkNotification),
	}

	action := gio.NewSimpleAction(notificationActionName, glib.NewVariantType("s"))
	action.ConnectActivate(func(parameter *glib.Variant) {
		if parameter == nil {
			return
		}
		n.activated(parameter.String())
	})
	n.app.AddAction(action)

	return n
}

func (n *Notifier) activated(id string) {
	n.mu.Lock()
	notification := n.byID[id]
	handler := n.handler
	n.mu.Unlock()

	if notification == nil {
		n.logger.Warn().Str("id", id).Msg("activation for unknown notification")
		return
	}
	if handler != nil {
		handler(notification, port.NotifyEvent{Kind: port.NotifyClicked})
	}
}

// Create allocates a notification surface. Display happens on Show.
func (n *Notifier) Create(_ context.Context, title string, kind port.NotificationKind) (port.NativeNotification, error) {
	id := fmt.Sprintf("deskshell-%d", n.counter.Add(1))

	notification := &gtkNotification{
		notifier: n,
		id:       id,
		title:    title,
		kind:     kind,
	}

	n.mu.Lock()
	n.byID[id] = notification
	n.mu.Unlock()

	return notification, nil
}

// SetEventHandler registers the interaction event sink.
func (n *Notifier) SetEventHandler(handler func(port.NativeNotification, port.NotifyEvent)) {
	n.mu.Lock()
	n.handler = handler
	n.mu.Unlock()
}

type gtkNotification struct {
	notifier *Notifier
	id       string
	title    string
	kind     port.NotificationKind
}

// Show sends or refreshes the notification. GApplication replaces a
// notification shown under the same id, which is exactly the identity-reuse
// semantics the registry wants. Timeouts map onto priority: persistent
// notifications are urgent, the rest use normal priority.
func (g *gtkNotification) Show(_ context.Context, message string, timeout port.NotifyTimeout) error {
	notification := gio.NewNotification(g.title)
	notification.SetBody(message)
	notification.SetDefaultActionAndTarget(
		"app."+notificationActionName, glib.NewVariantString(g.id))

	switch {
	case timeout == port.TimeoutNever:
		notification.SetPriority(gio.NotificationPriorityUrgent)
	case g.kind == port.NotificationError:
		notification.SetPriority(gio.NotificationPriorityHigh)
	default:
		notification.SetPriority(gio.NotificationPriorityNormal)
	}

	g.notifier.app.SendNotification(g.id, notification)
	return nil
}

func (g *gtkNotification) Handle() port.NativeHandle {
	return notificationHandle(g.id)
}

func (g *gtkNotification) Close(context.Context) {
	g.notifier.app.WithdrawNotification(g.id)

	g.notifier.mu.Lock()
	delete(g.notifier.byID, g.id)
	g.notifier.mu.Unlock()
}

// notificationHandle gives each notification id a stable pointer-shaped
// identity for registry matching.
type notificationHandle string

func (h notificationHandle) GoPointer() uintptr {
	var sum uintptr
	for _, b := range []byte(h) {
		sum = sum*31 + uintptr(b)
	}
	return sum
}

var _ port.Notifier = (*Notifier)(nil)
