package window

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskshell/deskshell/internal/application/port"
)

func TestRegistryShowReusesHandlePerIdentity(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := newNotificationRegistry(notifier, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, registry.show(ctx, "one", "Window", NotifyOptions{Identity: "sync"}))
	require.NoError(t, registry.show(ctx, "two", "Window", NotifyOptions{Identity: "sync"}))

	require.Equal(t, 1, notifier.createdCount())
	assert.Equal(t, []string{"one", "two"}, notifier.notification(0).shownMessages())
}

func TestRegistryShowDefaultsIdentityAndTitle(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := newNotificationRegistry(notifier, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, registry.show(ctx, "hi", "Window", NotifyOptions{}))
	require.NoError(t, registry.show(ctx, "hi again", "Window", NotifyOptions{Identity: DefaultNotificationIdentity}))

	require.Equal(t, 1, notifier.createdCount())
	assert.Equal(t, "Window", notifier.notification(0).title)
}

func TestRegistryShowWithoutNotifier(t *testing.T) {
	registry := newNotificationRegistry(nil, zerolog.Nop())

	err := registry.show(context.Background(), "hi", "Window", NotifyOptions{})
	assert.Error(t, err)
}

func TestRegistryDispatchOverwrittenCallback(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := newNotificationRegistry(notifier, zerolog.Nop())
	ctx := context.Background()

	events := make(chan string, 1)
	require.NoError(t, registry.show(ctx, "one", "Window", NotifyOptions{
		Identity: "sync",
		Callback: func(port.NotifyEvent) { events <- "stale" },
	}))
	require.NoError(t, registry.show(ctx, "two", "Window", NotifyOptions{
		Identity: "sync",
		Callback: func(port.NotifyEvent) { events <- "current" },
	}))

	registry.dispatch(notifier.notification(0), port.NotifyEvent{Kind: port.NotifyClicked})

	select {
	case got := <-events:
		assert.Equal(t, "current", got)
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}
}

func TestRegistryDispatchUnknownHandle(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := newNotificationRegistry(notifier, zerolog.Nop())

	// Must not panic; the stray handle is logged and dropped.
	registry.dispatch(&fakeNotification{id: 0xdead}, port.NotifyEvent{Kind: port.NotifyDismissed})
}

func TestRegistryDispatchWithoutCallback(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := newNotificationRegistry(notifier, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, registry.show(ctx, "one", "Window", NotifyOptions{Identity: "sync"}))
	registry.dispatch(notifier.notification(0), port.NotifyEvent{Kind: port.NotifyClicked})
}

func TestRegistryCloseAll(t *testing.T) {
	notifier := &fakeNotifier{}
	registry := newNotificationRegistry(notifier, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, registry.show(ctx, "a", "Window", NotifyOptions{Identity: "a"}))
	require.NoError(t, registry.show(ctx, "b", "Window", NotifyOptions{Identity: "b"}))

	registry.closeAll(ctx)

	assert.True(t, notifier.notification(0).isClosed())
	assert.True(t, notifier.notification(1).isClosed())
	assert.Empty(t, registry.entries)
}
