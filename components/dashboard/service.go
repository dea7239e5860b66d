package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDays is the time series length.
	DefaultDays = 7
	// DefaultScheduledPosts is the static scheduled-post count.
	DefaultScheduledPosts = 12
)

var (
	// ErrAlreadyMounted is returned when Mount is called on a mounted service.
	ErrAlreadyMounted = errors.New("dashboard: already mounted")
	// ErrMountRefresh is returned when a caller asks Refresh for the mount
	// refresh, which only Mount may emit.
	ErrMountRefresh = errors.New("dashboard: mount refresh is reserved for Mount")
	errNotMounted   = errors.New("dashboard: not mounted")
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations (deterministic sources,
// fake tickers, custom transports).
type Options struct {
	Source          DataSource
	Days            int
	Notifications   *NotificationBuffer
	RefreshHooks    []RefreshHook
	Telemetry       Telemetry
	Clock           Clock
	RefreshInterval time.Duration
	Ticker          TickerFunc
	DarkMode        bool
	Metric          Metric
	ScheduledPosts  int
	SessionID       string
}

// Service owns the dashboard state: datasets, notifications and view toggles.
// Every mutation goes through its methods; readers receive copies.
type Service struct {
	opts Options

	mu                sync.RWMutex
	mounted           bool
	revision          uint64
	series            []TimeSeriesPoint
	engagement        []EngagementSlice
	theme             ThemeMode
	metric            Metric
	showNotifications bool
	hooks             []RefreshHook
	updater           *LiveUpdater
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Source == nil {
		opts.Source = NewRandomSource(WithSourceClock(opts.Clock))
	}
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Notifications == nil {
		opts.Notifications = NewNotificationBuffer(WithNotificationClock(opts.Clock))
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.Ticker == nil {
		opts.Ticker = NewTimeTicker
	}
	if _, err := ParseMetric(string(opts.Metric)); err != nil {
		opts.Metric = MetricFollowers
	}
	if opts.ScheduledPosts <= 0 {
		opts.ScheduledPosts = DefaultScheduledPosts
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	hooks := make([]RefreshHook, 0, len(opts.RefreshHooks)+1)
	hooks = append(hooks, opts.Notifications)
	for _, hook := range opts.RefreshHooks {
		if hook != nil {
			hooks = append(hooks, hook)
		}
	}
	return &Service{
		opts:   opts,
		theme:  ThemeModeFor(opts.DarkMode),
		metric: opts.Metric,
		hooks:  hooks,
	}
}

// SessionID identifies this dashboard instance in refresh events.
func (s *Service) SessionID() string {
	return s.opts.SessionID
}

// Days returns the configured series length.
func (s *Service) Days() int {
	return s.opts.Days
}

// AddRefreshHook subscribes a hook to subsequent refreshes. Hooks run in
// registration order after the notification buffer.
func (s *Service) AddRefreshHook(hook RefreshHook) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Mount loads the first datasets, emits the mount notification and starts the
// live update timer. The timer lives until Unmount or until ctx is done; when
// ctx ends the service reports itself unmounted and may be mounted again.
func (s *Service) Mount(ctx context.Context) error {
	s.mu.Lock()
	if s.mounted {
		s.mu.Unlock()
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.updater = NewLiveUpdater(s, s.opts.RefreshInterval, s.opts.Ticker, s.opts.Telemetry)
	updater := s.updater
	s.mu.Unlock()

	if err := s.refresh(ctx, RefreshMount); err != nil {
		s.recordTelemetry(ctx, "dashboard.hook_error", map[string]any{"error": err.Error()})
	}
	if err := updater.Start(ctx); err != nil {
		s.detach(updater)
		return fmt.Errorf("dashboard: start live updates: %w", err)
	}
	go func() {
		<-updater.Done()
		if s.detach(updater) {
			s.recordTelemetry(context.Background(), "dashboard.unmount", map[string]any{
				"session_id": s.opts.SessionID,
				"reason":     "context_done",
			})
		}
	}()
	s.recordTelemetry(ctx, "dashboard.mount", map[string]any{
		"session_id": s.opts.SessionID,
		"interval":   s.opts.RefreshInterval.String(),
		"days":       s.opts.Days,
	})
	return nil
}

// Unmount stops the live update timer. Calling it twice is a no-op.
func (s *Service) Unmount(ctx context.Context) {
	s.mu.Lock()
	updater := s.updater
	wasMounted := s.mounted
	s.updater = nil
	s.mounted = false
	s.mu.Unlock()

	if updater != nil {
		updater.Stop()
	}
	if wasMounted {
		s.recordTelemetry(ctx, "dashboard.unmount", map[string]any{"session_id": s.opts.SessionID})
	}
}

// detach clears the mounted state if updater is still the active loop.
func (s *Service) detach(updater *LiveUpdater) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updater != updater {
		return false
	}
	s.updater = nil
	s.mounted = false
	return true
}

// Mounted reports whether the live update loop is active.
func (s *Service) Mounted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mounted
}

// Refresh replaces both datasets wholesale and publishes a RefreshEvent to the
// hooks. Data replacement completes before any hook observes the event, and
// all hooks complete before Refresh returns. Hooks must not call back into
// the Service. The mount refresh is emitted by Mount only.
func (s *Service) Refresh(ctx context.Context, reason RefreshReason) error {
	if reason == RefreshMount {
		return ErrMountRefresh
	}
	return s.refresh(ctx, reason)
}

func (s *Service) refresh(ctx context.Context, reason RefreshReason) error {
	series := s.opts.Source.TimeSeries(s.opts.Days)
	engagement := s.opts.Source.Engagement()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.mounted {
		return errNotMounted
	}
	s.series = series
	s.engagement = engagement
	s.revision++
	event := RefreshEvent{
		SessionID:  s.opts.SessionID,
		Revision:   s.revision,
		Reason:     reason,
		At:         s.opts.Clock(),
		TimeSeries: cloneSeries(series),
		Engagement: cloneSlices(engagement),
	}

	var hookErr error
	for _, hook := range s.hooks {
		if err := hook.DataRefreshed(ctx, event); err != nil {
			hookErr = errors.Join(hookErr, err)
		}
	}
	s.recordTelemetry(ctx, "dashboard.refresh", map[string]any{
		"revision": event.Revision,
		"reason":   string(reason),
		"points":   len(series),
	})
	return hookErr
}

// ToggleTheme flips between light and dark and returns the new mode.
func (s *Service) ToggleTheme(ctx context.Context) ThemeMode {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	mode := s.theme
	s.mu.Unlock()
	s.recordTelemetry(ctx, "dashboard.theme.toggle", map[string]any{"mode": string(mode)})
	return mode
}

// Theme resolves the current theme selection.
func (s *Service) Theme() ThemeSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SelectTheme(s.theme)
}

// ToggleNotifications flips the notification panel visibility.
func (s *Service) ToggleNotifications(ctx context.Context) bool {
	s.mu.Lock()
	s.showNotifications = !s.showNotifications
	visible := s.showNotifications
	s.mu.Unlock()
	s.recordTelemetry(ctx, "dashboard.notifications.toggle", map[string]any{"visible": visible})
	return visible
}

// SetNotificationsVisible sets the notification panel visibility.
func (s *Service) SetNotificationsVisible(ctx context.Context, visible bool) {
	s.mu.Lock()
	s.showNotifications = visible
	s.mu.Unlock()
	s.recordTelemetry(ctx, "dashboard.notifications.toggle", map[string]any{"visible": visible})
}

// SelectMetric changes the metric plotted by the area chart.
func (s *Service) SelectMetric(ctx context.Context, metric Metric) error {
	parsed, err := ParseMetric(string(metric))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.metric = parsed
	s.mu.Unlock()
	s.recordTelemetry(ctx, "dashboard.metric.select", map[string]any{"metric": string(parsed)})
	return nil
}

// Snapshot returns a consistent copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		SessionID:         s.opts.SessionID,
		Revision:          s.revision,
		Mounted:           s.mounted,
		TimeSeries:        cloneSeries(s.series),
		Engagement:        cloneSlices(s.engagement),
		Notifications:     s.opts.Notifications.List(),
		ShowNotifications: s.showNotifications,
		Theme:             s.theme,
		Metric:            s.metric,
	}
}

// Notifications returns the buffered notifications, newest first.
func (s *Service) Notifications() []Notification {
	return s.opts.Notifications.List()
}

// ScheduledPosts is the static scheduled-post count shown on the cards.
func (s *Service) ScheduledPosts() int {
	return s.opts.ScheduledPosts
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
