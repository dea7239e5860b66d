package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationBufferNewestFirstAndBounded(t *testing.T) {
	buffer := NewNotificationBuffer()
	for i := 0; i < 8; i++ {
		buffer.Push(fmt.Sprintf("n%d", i))
	}
	items := buffer.List()
	require.Len(t, items, DefaultNotificationCapacity)
	assert.Equal(t, "n7", items[0].Message)
	assert.Equal(t, "n3", items[4].Message)
	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i-1].ID, items[i].ID)
	}
}

func TestNotificationBufferIDsStrictlyIncreaseWithFrozenClock(t *testing.T) {
	frozen := time.Date(2025, 1, 1, 14, 5, 9, 0, time.UTC)
	buffer := NewNotificationBuffer(WithNotificationClock(func() time.Time { return frozen }))
	first := buffer.Push("a")
	second := buffer.Push("b")
	assert.Equal(t, frozen.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
	assert.Equal(t, "2:05:09 PM", second.Time)
}

func TestNotificationBufferRefreshHook(t *testing.T) {
	buffer := NewNotificationBuffer(WithNotificationCapacity(2), WithNotificationMessage("tick"))
	for i := 0; i < 3; i++ {
		require.NoError(t, buffer.DataRefreshed(context.Background(), RefreshEvent{}))
	}
	assert.Equal(t, 2, buffer.Len())
	assert.Equal(t, 2, buffer.Capacity())
	assert.Equal(t, "tick", buffer.List()[0].Message)

	buffer.Reset()
	assert.Equal(t, 0, buffer.Len())
}

func TestNotificationBufferListIsACopy(t *testing.T) {
	buffer := NewNotificationBuffer()
	buffer.Push("x")
	items := buffer.List()
	items[0].Message = "mutated"
	assert.Equal(t, "x", buffer.List()[0].Message)
}

type recordingClient struct {
	channel string
	sent    []Notification
}

func (c *recordingClient) PublishNotification(_ context.Context, channel string, n Notification) error {
	c.channel = channel
	c.sent = append(c.sent, n)
	return nil
}

func TestNotificationsHookForwardsNewest(t *testing.T) {
	buffer := NewNotificationBuffer()
	client := &recordingClient{}
	hook := &NotificationsHook{Client: client, Buffer: buffer, Channel: "alerts"}

	require.NoError(t, hook.DataRefreshed(context.Background(), RefreshEvent{}))
	assert.Empty(t, client.sent)

	buffer.Push("first")
	buffer.Push("second")
	require.NoError(t, hook.DataRefreshed(context.Background(), RefreshEvent{}))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "second", client.sent[0].Message)
	assert.Equal(t, "alerts", client.channel)
}
