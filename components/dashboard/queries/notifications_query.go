package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// NotificationsInput limits the number of returned notifications (0 = all).
type NotificationsInput struct {
	Limit int
}

type notificationSource interface {
	Notifications() []dashboard.Notification
}

// NotificationsQuery lists buffered notifications, newest first.
type NotificationsQuery struct {
	source notificationSource
}

// NewNotificationsQuery builds the query.
func NewNotificationsQuery(source notificationSource) *NotificationsQuery {
	return &NotificationsQuery{source: source}
}

var _ gocommand.Querier[NotificationsInput, []dashboard.Notification] = (*NotificationsQuery)(nil)

// Query returns up to Limit notifications.
func (q *NotificationsQuery) Query(_ context.Context, input NotificationsInput) ([]dashboard.Notification, error) {
	items := q.source.Notifications()
	if input.Limit > 0 && input.Limit < len(items) {
		items = items[:input.Limit]
	}
	return items, nil
}
