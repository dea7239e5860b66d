package dashboard

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultNotificationCapacity bounds the notification buffer.
	DefaultNotificationCapacity = 5
	// DefaultNotificationMessage is emitted on every refresh.
	DefaultNotificationMessage = "Engagement spike detected! 📈"
	// NotificationTimeLayout formats the notification clock string.
	NotificationTimeLayout = "3:04:05 PM"
)

// NotificationBuffer keeps the most recent notifications, newest first.
// It subscribes to refresh events and emits exactly one entry per event.
type NotificationBuffer struct {
	mu       sync.RWMutex
	items    []Notification
	capacity int
	message  string
	clock    Clock
	lastID   int64
}

// NotificationBufferOption customizes a NotificationBuffer.
type NotificationBufferOption func(*NotificationBuffer)

// WithNotificationCapacity overrides the buffer size (values < 1 are ignored).
func WithNotificationCapacity(capacity int) NotificationBufferOption {
	return func(b *NotificationBuffer) {
		if capacity > 0 {
			b.capacity = capacity
		}
	}
}

// WithNotificationMessage overrides the message text.
func WithNotificationMessage(message string) NotificationBufferOption {
	return func(b *NotificationBuffer) {
		if message != "" {
			b.message = message
		}
	}
}

// WithNotificationClock swaps the wall clock.
func WithNotificationClock(clock Clock) NotificationBufferOption {
	return func(b *NotificationBuffer) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// NewNotificationBuffer builds an empty buffer.
func NewNotificationBuffer(opts ...NotificationBufferOption) *NotificationBuffer {
	b := &NotificationBuffer{
		capacity: DefaultNotificationCapacity,
		message:  DefaultNotificationMessage,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.items = make([]Notification, 0, b.capacity)
	return b
}

// DataRefreshed implements RefreshHook.
func (b *NotificationBuffer) DataRefreshed(_ context.Context, _ RefreshEvent) error {
	b.Push(b.message)
	return nil
}

// Push prepends a notification and drops anything beyond capacity.
func (b *NotificationBuffer) Push(message string) Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.clock()
	id := now.UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	n := Notification{
		ID:      id,
		Message: message,
		Time:    now.Format(NotificationTimeLayout),
	}
	keep := len(b.items)
	if keep > b.capacity-1 {
		keep = b.capacity - 1
	}
	items := make([]Notification, 0, b.capacity)
	items = append(items, n)
	items = append(items, b.items[:keep]...)
	b.items = items
	return n
}

// List returns a copy of the buffer, newest first.
func (b *NotificationBuffer) List() []Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Notification, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of buffered notifications.
func (b *NotificationBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Capacity returns the buffer bound.
func (b *NotificationBuffer) Capacity() int {
	return b.capacity
}

// Reset drops every notification.
func (b *NotificationBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = b.items[:0]
}
