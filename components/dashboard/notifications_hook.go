package dashboard

import "context"

// NotificationsClient defines the minimal interface needed to forward
// notifications to an external channel (chat, email, log sink).
type NotificationsClient interface {
	PublishNotification(ctx context.Context, channel string, notification Notification) error
}

// NotificationsHook forwards the newest buffered notification after each
// refresh. Register it after the buffer so the entry already exists.
type NotificationsHook struct {
	Client  NotificationsClient
	Buffer  *NotificationBuffer
	Channel string
}

// DataRefreshed publishes the newest notification to the configured client.
func (h *NotificationsHook) DataRefreshed(ctx context.Context, _ RefreshEvent) error {
	if h == nil || h.Client == nil || h.Buffer == nil {
		return nil
	}
	items := h.Buffer.List()
	if len(items) == 0 {
		return nil
	}
	return h.Client.PublishNotification(ctx, h.Channel, items[0])
}
