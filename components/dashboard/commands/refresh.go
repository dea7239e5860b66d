package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// RefreshDashboardInput requests an out-of-band data refresh. Reason is
// "tick" or "manual"; the mount refresh belongs to Service.Mount.
type RefreshDashboardInput struct {
	Reason dashboard.RefreshReason `json:"reason,omitempty"`
}

type refresher interface {
	Refresh(ctx context.Context, reason dashboard.RefreshReason) error
}

// RefreshDashboardCommand runs the same refresh path as a timer tick.
type RefreshDashboardCommand struct {
	service   refresher
	telemetry Telemetry
}

// NewRefreshDashboardCommand creates the command.
func NewRefreshDashboardCommand(service refresher, telemetry Telemetry) *RefreshDashboardCommand {
	return &RefreshDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshDashboardInput] = (*RefreshDashboardCommand)(nil)

// Execute replaces the datasets and notifies refresh hooks.
func (c *RefreshDashboardCommand) Execute(ctx context.Context, msg RefreshDashboardInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	reason := msg.Reason
	switch reason {
	case "":
		reason = dashboard.RefreshManual
	case dashboard.RefreshMount:
		return dashboard.ErrMountRefresh
	}
	if err := c.service.Refresh(ctx, reason); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.command.refresh", map[string]any{"reason": string(reason)})
	return nil
}
