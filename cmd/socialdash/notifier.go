package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
)

// logNotifier publishes notifications as structured log lines.
type logNotifier struct {
	logger logrus.FieldLogger
}

func (n logNotifier) PublishNotification(_ context.Context, channel string, notification dashboard.Notification) error {
	n.logger.WithFields(logrus.Fields{
		"channel": channel,
		"id":      notification.ID,
		"time":    notification.Time,
	}).Info(notification.Message)
	return nil
}
