package httpapi

import (
	"context"
	"errors"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-social-dashboard/components/dashboard/queries"
)

// Executor is the transport-neutral API used by HTTP adapters.
type Executor interface {
	ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error
	ToggleNotifications(ctx context.Context, input commands.ToggleNotificationsInput) error
	SelectMetric(ctx context.Context, input commands.SelectMetricInput) error
	Refresh(ctx context.Context, input commands.RefreshDashboardInput) error
	ViewState(ctx context.Context) (dashboard.ViewState, error)
	Notifications(ctx context.Context, input queries.NotificationsInput) ([]dashboard.Notification, error)
}

// CommandExecutor implements Executor on top of go-command handlers.
type CommandExecutor struct {
	ThemeCommander         gocommand.Commander[commands.ToggleThemeInput]
	NotificationsCommander gocommand.Commander[commands.ToggleNotificationsInput]
	MetricCommander        gocommand.Commander[commands.SelectMetricInput]
	RefreshCommander       gocommand.Commander[commands.RefreshDashboardInput]
	ViewStateQuerier       gocommand.Querier[queries.ViewStateInput, dashboard.ViewState]
	NotificationsQuerier   gocommand.Querier[queries.NotificationsInput, []dashboard.Notification]
}

var errCommanderMissing = errors.New("httpapi: commander not configured")

// NewCommandExecutor wires the default commands and queries for a controller.
func NewCommandExecutor(controller *dashboard.Controller, telemetry commands.Telemetry) *CommandExecutor {
	service := controller.Service()
	return &CommandExecutor{
		ThemeCommander:         commands.NewToggleThemeCommand(service, telemetry),
		NotificationsCommander: commands.NewToggleNotificationsCommand(service, telemetry),
		MetricCommander:        commands.NewSelectMetricCommand(service, telemetry),
		RefreshCommander:       commands.NewRefreshDashboardCommand(service, telemetry),
		ViewStateQuerier:       queries.NewViewStateQuery(controller),
		NotificationsQuerier:   queries.NewNotificationsQuery(service),
	}
}

func (e *CommandExecutor) ToggleTheme(ctx context.Context, input commands.ToggleThemeInput) error {
	if e.ThemeCommander == nil {
		return errCommanderMissing
	}
	return e.ThemeCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleNotifications(ctx context.Context, input commands.ToggleNotificationsInput) error {
	if e.NotificationsCommander == nil {
		return errCommanderMissing
	}
	return e.NotificationsCommander.Execute(ctx, input)
}

func (e *CommandExecutor) SelectMetric(ctx context.Context, input commands.SelectMetricInput) error {
	if e.MetricCommander == nil {
		return errCommanderMissing
	}
	return e.MetricCommander.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshDashboardInput) error {
	if e.RefreshCommander == nil {
		return errCommanderMissing
	}
	return e.RefreshCommander.Execute(ctx, input)
}

func (e *CommandExecutor) ViewState(ctx context.Context) (dashboard.ViewState, error) {
	if e.ViewStateQuerier == nil {
		return dashboard.ViewState{}, errCommanderMissing
	}
	return e.ViewStateQuerier.Query(ctx, queries.ViewStateInput{})
}

func (e *CommandExecutor) Notifications(ctx context.Context, input queries.NotificationsInput) ([]dashboard.Notification, error) {
	if e.NotificationsQuerier == nil {
		return nil, errCommanderMissing
	}
	return e.NotificationsQuerier.Query(ctx, input)
}

// StatusFor maps API errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, dashboard.ErrMountRefresh):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrUnknownMetric):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
