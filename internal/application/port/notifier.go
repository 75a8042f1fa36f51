package port

import "context"

// NotificationKind indicates the visual style of a native notification.
type NotificationKind int

const (
	// NotificationInfo is for informational messages.
	NotificationInfo NotificationKind = iota
	// NotificationWarning is for warning messages.
	NotificationWarning
	// NotificationError is for error messages.
	NotificationError
)

// String returns a human-readable representation of the notification kind.
func (k NotificationKind) String() string {
	switch k {
	case NotificationWarning:
		return "warning"
	case NotificationError:
		return "error"
	default:
		return "info"
	}
}

// NotifyTimeout controls how long a notification stays visible.
// Zero means the toolkit default; TimeoutNever persists the notification
// until dismissed; positive values are milliseconds.
type NotifyTimeout int

const (
	// TimeoutAuto uses the toolkit's default duration.
	TimeoutAuto NotifyTimeout = 0
	// TimeoutNever keeps the notification until the user dismisses it.
	TimeoutNever NotifyTimeout = -1
)

// NotifyEventKind discriminates notification interaction events.
type NotifyEventKind int

const (
	// NotifyClicked means the notification body was activated.
	NotifyClicked NotifyEventKind = iota
	// NotifyDismissed means the notification was closed without activation.
	NotifyDismissed
	// NotifyAction means a notification action button was activated;
	// ActionIndex identifies which one.
	NotifyAction
)

// String returns a human-readable representation of the event kind.
func (k NotifyEventKind) String() string {
	switch k {
	case NotifyClicked:
		return "clicked"
	case NotifyDismissed:
		return "dismissed"
	case NotifyAction:
		return "action"
	default:
		return "unknown"
	}
}

// NotifyEvent describes a user interaction with a native notification.
type NotifyEvent struct {
	Kind NotifyEventKind
	// ActionIndex is meaningful only when Kind is NotifyAction.
	ActionIndex int
}

// NativeNotification is the port interface for one displayed OS notification.
// A handle is created once per notification identity and reused; showing
// again with a new message updates the existing surface in place.
type NativeNotification interface {
	// Show displays or refreshes the notification with the given message.
	Show(ctx context.Context, message string, timeout NotifyTimeout) error

	// Handle returns the opaque native handle.
	Handle() NativeHandle

	// Close withdraws the notification if it is still visible.
	Close(ctx context.Context)
}

// Notifier is the port interface for the OS notification presentation
// primitive.
type Notifier interface {
	// Create allocates a native notification bound to a title and kind.
	// Nothing is displayed until Show is called on the result.
	Create(ctx context.Context, title string, kind NotificationKind) (NativeNotification, error)

	// SetEventHandler registers the sink for notification interaction
	// events. Implementations that cannot observe interactions (e.g.
	// fire-and-forget desktop notifications) never invoke it.
	SetEventHandler(handler func(n NativeNotification, ev NotifyEvent))
}
