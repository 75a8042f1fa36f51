package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskshell/deskshell/internal/application/port"
)

func TestCreateAssignsDistinctHandles(t *testing.T) {
	notifier := New("")
	ctx := context.Background()

	first, err := notifier.Create(ctx, "Window", port.NotificationInfo)
	require.NoError(t, err)
	second, err := notifier.Create(ctx, "Window", port.NotificationError)
	require.NoError(t, err)

	assert.NotEqual(t, first.Handle().GoPointer(), second.Handle().GoPointer())
	// The handle is the registry's lookup key, so it must be stable.
	assert.Equal(t, first.Handle().GoPointer(), first.Handle().GoPointer())
}

func TestSetEventHandlerNeverFires(t *testing.T) {
	notifier := New("")

	fired := false
	notifier.SetEventHandler(func(port.NativeNotification, port.NotifyEvent) { fired = true })

	n, err := notifier.Create(context.Background(), "Window", port.NotificationInfo)
	require.NoError(t, err)
	n.Close(context.Background())

	assert.False(t, fired)
}
