package dashboard

import (
	"context"
	"time"
)

// DataSource produces the datasets rendered by the dashboard. Implementations
// must honour the shape invariants: TimeSeries returns exactly `days` points,
// Engagement returns the four categories in EngagementCategories order.
type DataSource interface {
	TimeSeries(days int) []TimeSeriesPoint
	Engagement() []EngagementSlice
}

// RefreshHook observes data refreshes (notification buffer, transports).
type RefreshHook interface {
	DataRefreshed(ctx context.Context, event RefreshEvent) error
}

// RefreshHookFunc adapts a function into a RefreshHook.
type RefreshHookFunc func(ctx context.Context, event RefreshEvent) error

// DataRefreshed calls f(ctx, event).
func (f RefreshHookFunc) DataRefreshed(ctx context.Context, event RefreshEvent) error {
	return f(ctx, event)
}

// Clock returns the current instant. Tests swap it for a fixed clock.
type Clock func() time.Time

// TimeSeriesPoint is one day's snapshot of the tracked counters.
type TimeSeriesPoint struct {
	Date       string `json:"date" yaml:"date"`
	Followers  int    `json:"followers" yaml:"followers"`
	Engagement int    `json:"engagement" yaml:"engagement"`
	Posts      int    `json:"posts" yaml:"posts"`
}

// Value returns the counter tracked by metric.
func (p TimeSeriesPoint) Value(metric Metric) int {
	switch metric {
	case MetricEngagement:
		return p.Engagement
	case MetricPosts:
		return p.Posts
	default:
		return p.Followers
	}
}

// EngagementSlice is one category's share of total engagement.
type EngagementSlice struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Notification is a single entry of the notification buffer.
type Notification struct {
	ID      int64  `json:"id" yaml:"id"`
	Message string `json:"message" yaml:"message"`
	Time    string `json:"time" yaml:"time"`
}

// RefreshReason tells subscribers what produced a refresh.
type RefreshReason string

const (
	RefreshMount  RefreshReason = "mount"
	RefreshTick   RefreshReason = "tick"
	RefreshManual RefreshReason = "manual"
)

// RefreshEvent is published after the datasets were replaced.
type RefreshEvent struct {
	SessionID  string            `json:"session_id"`
	Revision   uint64            `json:"revision"`
	Reason     RefreshReason     `json:"reason"`
	At         time.Time         `json:"at"`
	TimeSeries []TimeSeriesPoint `json:"time_series"`
	Engagement []EngagementSlice `json:"engagement"`
}

// Snapshot is a copy of the dashboard state at a given revision.
type Snapshot struct {
	SessionID         string            `json:"session_id" yaml:"session_id"`
	Revision          uint64            `json:"revision" yaml:"revision"`
	Mounted           bool              `json:"mounted" yaml:"mounted"`
	TimeSeries        []TimeSeriesPoint `json:"time_series" yaml:"time_series"`
	Engagement        []EngagementSlice `json:"engagement" yaml:"engagement"`
	Notifications     []Notification    `json:"notifications" yaml:"notifications"`
	ShowNotifications bool              `json:"show_notifications" yaml:"show_notifications"`
	Theme             ThemeMode         `json:"theme" yaml:"theme"`
	Metric            Metric            `json:"metric" yaml:"metric"`
}

// Latest returns the newest point of the series.
func (s Snapshot) Latest() (TimeSeriesPoint, bool) {
	if len(s.TimeSeries) == 0 {
		return TimeSeriesPoint{}, false
	}
	return s.TimeSeries[len(s.TimeSeries)-1], true
}

func cloneSeries(points []TimeSeriesPoint) []TimeSeriesPoint {
	if points == nil {
		return nil
	}
	out := make([]TimeSeriesPoint, len(points))
	copy(out, points)
	return out
}

func cloneSlices(slices []EngagementSlice) []EngagementSlice {
	if slices == nil {
		return nil
	}
	out := make([]EngagementSlice, len(slices))
	copy(out, slices)
	return out
}
