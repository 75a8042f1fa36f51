package window

import (
	"context"
	"fmt"

	"github.com/deskshell/deskshell/internal/application/port"
	"github.com/rs/zerolog"
)

// DefaultNotificationIdentity is used when a caller supplies no identity.
// Identities are deliberately not unique per call: reusing one updates the
// message on the existing native notification instead of stacking new ones.
const DefaultNotificationIdentity = "default"

// NotifyOptions configures a ShowNotification call.
type NotifyOptions struct {
	// Identity keys the native notification handle. Defaults to
	// DefaultNotificationIdentity.
	Identity string

	// Kind selects the visual style. Defaults to info.
	Kind port.NotificationKind

	// Title defaults to the window title.
	Title string

	// Timeout defaults to the toolkit's own duration.
	Timeout port.NotifyTimeout

	// Callback receives click/dismiss/action events for this identity.
	// It runs on a detached goroutine and must not assume any ordering
	// with respect to the window actor.
	Callback func(port.NotifyEvent)
}

type notificationEntry struct {
	native   port.NativeNotification
	callback func(port.NotifyEvent)
}

// notificationRegistry maps notification identities to native handles and
// callbacks. It is owned by the window actor and only touched from the
// actor goroutine, so it carries no locking of its own.
type notificationRegistry struct {
	notifier port.Notifier
	entries  map[string]*notificationEntry
	logger   zerolog.Logger
}

func newNotificationRegistry(notifier port.Notifier, logger zerolog.Logger) *notificationRegistry {
	return &notificationRegistry{
		notifier: notifier,
		entries:  make(map[string]*notificationEntry),
		logger:   logger.With().Str("component", "notifications").Logger(),
	}
}

// show displays message under the given identity, creating the native
// handle on first use and reusing it afterwards. The callback stored for an
// identity is overwritten on every show.
func (r *notificationRegistry) show(ctx context.Context, message, windowTitle string, opts NotifyOptions) error {
	if r.notifier == nil {
		return fmt.Errorf("no notifier wired")
	}

	identity := opts.Identity
	if identity == "" {
		identity = DefaultNotificationIdentity
	}

	entry, ok := r.entries[identity]
	if !ok {
		title := opts.Title
		if title == "" {
			title = windowTitle
		}

		native, err := r.notifier.Create(ctx, title, opts.Kind)
		if err != nil {
			return fmt.Errorf("create notification %q: %w", identity, err)
		}

		entry = &notificationEntry{native: native}
		r.entries[identity] = entry

		r.logger.Debug().
			Str("identity", identity).
			Str("kind", opts.Kind.String()).
			Msg("notification handle created")
	}

	entry.callback = opts.Callback

	if err := entry.native.Show(ctx, message, opts.Timeout); err != nil {
		return fmt.Errorf("show notification %q: %w", identity, err)
	}

	return nil
}

// dispatch routes a native notification event to the callback registered
// for the matching handle. The callback runs on a detached goroutine so a
// slow or panicking callback cannot stall the actor. An unmatched handle is
// a registry/toolkit desync: logged, never fatal.
func (r *notificationRegistry) dispatch(native port.NativeNotification, event port.NotifyEvent) {
	entry := r.lookupByHandle(native)
	if entry == nil {
		r.logger.Error().
			Str("event", event.Kind.String()).
			Msg("notification event for unknown handle")
		return
	}

	if entry.callback == nil {
		return
	}

	callback := entry.callback
	logger := r.logger

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().
					Interface("panic", rec).
					Str("event", event.Kind.String()).
					Msg("notification callback panicked")
			}
		}()
		callback(event)
	}()
}

func (r *notificationRegistry) lookupByHandle(native port.NativeNotification) *notificationEntry {
	for _, entry := range r.entries {
		if entry.native == native {
			return entry
		}
		if native != nil && entry.native != nil &&
			entry.native.Handle() != nil && native.Handle() != nil &&
			entry.native.Handle().GoPointer() == native.Handle().GoPointer() {
			return entry
		}
	}
	return nil
}

// closeAll withdraws every native notification. Called on actor teardown.
func (r *notificationRegistry) closeAll(ctx context.Context) {
	for identity, entry := range r.entries {
		entry.native.Close(ctx)
		delete(r.entries, identity)
	}
}
