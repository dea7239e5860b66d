package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ToggleNotificationsInput sets the notification panel visibility. A nil
// Visible flips the current state.
type ToggleNotificationsInput struct {
	Visible *bool `json:"visible,omitempty"`
}

type notificationsToggler interface {
	ToggleNotifications(ctx context.Context) bool
	SetNotificationsVisible(ctx context.Context, visible bool)
}

// ToggleNotificationsCommand shows or hides the notification panel.
type ToggleNotificationsCommand struct {
	service   notificationsToggler
	telemetry Telemetry
}

// NewToggleNotificationsCommand creates the command.
func NewToggleNotificationsCommand(service notificationsToggler, telemetry Telemetry) *ToggleNotificationsCommand {
	return &ToggleNotificationsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleNotificationsInput] = (*ToggleNotificationsCommand)(nil)

// Execute updates the panel visibility.
func (c *ToggleNotificationsCommand) Execute(ctx context.Context, msg ToggleNotificationsInput) error {
	if c.service == nil {
		return errors.New("toggle notifications command requires service")
	}
	visible := false
	if msg.Visible != nil {
		visible = *msg.Visible
		c.service.SetNotificationsVisible(ctx, visible)
	} else {
		visible = c.service.ToggleNotifications(ctx)
	}
	c.telemetry.Record(ctx, "dashboard.command.notifications", map[string]any{"visible": visible})
	return nil
}
