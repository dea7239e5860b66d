package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

func TestToggleThemeCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewToggleThemeCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), ToggleThemeInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.themeCalls != 1 {
		t.Fatalf("expected theme toggle call")
	}
	if telemetry.calls != 1 {
		t.Fatalf("expected telemetry to record event")
	}
}

func TestToggleNotificationsCommandFlips(t *testing.T) {
	service := &stubService{}
	cmd := NewToggleNotificationsCommand(service, nil)
	if err := cmd.Execute(context.Background(), ToggleNotificationsInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.toggleCalls != 1 || service.setCalls != 0 {
		t.Fatalf("expected a toggle, got toggle=%d set=%d", service.toggleCalls, service.setCalls)
	}
}

func TestToggleNotificationsCommandExplicitVisibility(t *testing.T) {
	service := &stubService{}
	cmd := NewToggleNotificationsCommand(service, nil)
	visible := true
	if err := cmd.Execute(context.Background(), ToggleNotificationsInput{Visible: &visible}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.setCalls != 1 || !service.visible {
		t.Fatalf("expected explicit visibility to be applied")
	}
}

func TestSelectMetricCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSelectMetricCommand(service, nil)
	if err := cmd.Execute(context.Background(), SelectMetricInput{Metric: " Engagement "}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.metric != dashboard.MetricEngagement {
		t.Fatalf("expected engagement metric, got %q", service.metric)
	}
}

func TestSelectMetricCommandRejectsUnknownMetric(t *testing.T) {
	service := &stubService{}
	cmd := NewSelectMetricCommand(service, nil)
	err := cmd.Execute(context.Background(), SelectMetricInput{Metric: "reach"})
	if !errors.Is(err, dashboard.ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
	if service.metric != "" {
		t.Fatalf("service should not be called for invalid metric")
	}
}

func TestRefreshDashboardCommandDefaultsToManual(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshDashboardCommand(service, nil)
	if err := cmd.Execute(context.Background(), RefreshDashboardInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.lastReason != dashboard.RefreshManual {
		t.Fatalf("expected manual reason, got %q", service.lastReason)
	}
}

func TestRefreshDashboardCommandAgainstService(t *testing.T) {
	service := dashboard.NewService(dashboard.Options{
		Ticker: func(_ time.Duration) (<-chan time.Time, func()) { return nil, func() {} },
	})
	ctx := context.Background()
	if err := service.Mount(ctx); err != nil {
		t.Fatalf("Mount returned error: %v", err)
	}
	defer service.Unmount(ctx)

	cmd := NewRefreshDashboardCommand(service, nil)
	if err := cmd.Execute(ctx, RefreshDashboardInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := len(service.Notifications()); got != 2 {
		t.Fatalf("expected 2 notifications after mount + refresh, got %d", got)
	}
}

func TestRefreshDashboardCommandRejectsMountReason(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshDashboardCommand(service, nil)
	err := cmd.Execute(context.Background(), RefreshDashboardInput{Reason: dashboard.RefreshMount})
	if !errors.Is(err, dashboard.ErrMountRefresh) {
		t.Fatalf("expected ErrMountRefresh, got %v", err)
	}
	if service.lastReason != "" {
		t.Fatalf("service should not be refreshed, got reason %q", service.lastReason)
	}
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	if err := NewToggleThemeCommand(nil, nil).Execute(ctx, ToggleThemeInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
	if err := NewSelectMetricCommand(nil, nil).Execute(ctx, SelectMetricInput{Metric: "posts"}); err == nil {
		t.Fatalf("expected error without service")
	}
	if err := NewRefreshDashboardCommand(nil, nil).Execute(ctx, RefreshDashboardInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
}

type stubService struct {
	themeCalls  int
	toggleCalls int
	setCalls    int
	visible     bool
	metric      dashboard.Metric
	lastReason  dashboard.RefreshReason
}

func (s *stubService) ToggleTheme(context.Context) dashboard.ThemeMode {
	s.themeCalls++
	return dashboard.ThemeDark
}

func (s *stubService) ToggleNotifications(context.Context) bool {
	s.toggleCalls++
	s.visible = !s.visible
	return s.visible
}

func (s *stubService) SetNotificationsVisible(_ context.Context, visible bool) {
	s.setCalls++
	s.visible = visible
}

func (s *stubService) SelectMetric(_ context.Context, metric dashboard.Metric) error {
	s.metric = metric
	return nil
}

func (s *stubService) Refresh(_ context.Context, reason dashboard.RefreshReason) error {
	s.lastReason = reason
	return nil
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}
