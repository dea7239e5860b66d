package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

const defaultFetchTimeout = 3 * time.Second

var (
	errEmptyResponse = errors.New("analytics: empty response")
	errShortSeries   = errors.New("analytics: series shorter than requested")
)

// Source adapts a Client into a dashboard.DataSource. Fetch failures fall
// back to the configured source so a refresh always produces data.
type Source struct {
	client    Client
	fallback  dashboard.DataSource
	timeout   time.Duration
	telemetry dashboard.Telemetry
}

// SourceOption customizes a Source.
type SourceOption func(*Source)

// WithFallback sets the data source used when the client fails.
func WithFallback(fallback dashboard.DataSource) SourceOption {
	return func(s *Source) {
		if fallback != nil {
			s.fallback = fallback
		}
	}
}

// WithTimeout bounds each upstream call.
func WithTimeout(timeout time.Duration) SourceOption {
	return func(s *Source) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithTelemetry records fallback events.
func WithTelemetry(telemetry dashboard.Telemetry) SourceOption {
	return func(s *Source) {
		s.telemetry = telemetry
	}
}

// NewSource wraps client. Without WithFallback the mock generator is used.
func NewSource(client Client, opts ...SourceOption) *Source {
	s := &Source{
		client:   client,
		fallback: dashboard.NewRandomSource(),
		timeout:  defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ dashboard.DataSource = (*Source)(nil)

// TimeSeries implements dashboard.DataSource.
func (s *Source) TimeSeries(days int) []dashboard.TimeSeriesPoint {
	if days < 1 {
		return []dashboard.TimeSeriesPoint{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	points, err := s.client.FetchTimeSeries(ctx, days)
	switch {
	case err != nil:
	case len(points) == 0:
		err = errEmptyResponse
	case len(points) < days:
		err = fmt.Errorf("%w: got %d, want %d", errShortSeries, len(points), days)
	}
	if err != nil {
		s.record(ctx, "timeseries", err)
		return s.fallback.TimeSeries(days)
	}
	// Upstream series are oldest-first; keep the newest days points.
	out := make([]dashboard.TimeSeriesPoint, days)
	copy(out, points[len(points)-days:])
	return out
}

// Engagement implements dashboard.DataSource. The result always carries the
// four engagement categories in display order.
func (s *Source) Engagement() []dashboard.EngagementSlice {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	slices, err := s.client.FetchEngagement(ctx)
	if err == nil && len(slices) == 0 {
		err = errEmptyResponse
	}
	if err != nil {
		s.record(ctx, "engagement", err)
		return s.fallback.Engagement()
	}
	return dashboard.NewStaticSource(nil, slices).Engagement()
}

func (s *Source) record(ctx context.Context, dataset string, err error) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.Record(ctx, "analytics.fallback", map[string]any{
		"dataset": dataset,
		"error":   err.Error(),
	})
}
