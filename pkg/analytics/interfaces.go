package analytics

import (
	"context"

	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// SeriesClient fetches daily audience metrics from an upstream analytics service.
type SeriesClient interface {
	FetchTimeSeries(ctx context.Context, days int) ([]dashboard.TimeSeriesPoint, error)
}

// EngagementClient fetches the engagement breakdown.
type EngagementClient interface {
	FetchEngagement(ctx context.Context) ([]dashboard.EngagementSlice, error)
}

// Client is a convenience union for services that implement all analytics calls.
type Client interface {
	SeriesClient
	EngagementClient
}
