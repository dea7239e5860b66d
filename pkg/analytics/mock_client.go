package analytics

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// MockFrame is one recorded refresh worth of data.
type MockFrame struct {
	Series     []dashboard.TimeSeriesPoint
	Engagement []dashboard.EngagementSlice
}

// MockClient implements Client by replaying frames in order, wrapping around
// after the last one. Each FetchEngagement call advances to the next frame.
type MockClient struct {
	mu     sync.Mutex
	frames []MockFrame
	pos    int
	err    error
}

// NewMockClient builds a mock analytics client from the provided frames.
func NewMockClient(frames ...MockFrame) *MockClient {
	return &MockClient{frames: frames}
}

// FailWith makes every subsequent call return err (nil restores success).
func (c *MockClient) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// FetchTimeSeries returns the current frame's series, trimmed to days.
func (c *MockClient) FetchTimeSeries(_ context.Context, days int) ([]dashboard.TimeSeriesPoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if len(c.frames) == 0 {
		return []dashboard.TimeSeriesPoint{}, nil
	}
	series := c.frames[c.pos].Series
	if days >= 0 && days < len(series) {
		series = series[len(series)-days:]
	}
	return append([]dashboard.TimeSeriesPoint(nil), series...), nil
}

// FetchEngagement returns the current frame's breakdown and advances.
func (c *MockClient) FetchEngagement(context.Context) ([]dashboard.EngagementSlice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if len(c.frames) == 0 {
		return []dashboard.EngagementSlice{}, nil
	}
	slices := append([]dashboard.EngagementSlice(nil), c.frames[c.pos].Engagement...)
	c.pos = (c.pos + 1) % len(c.frames)
	return slices, nil
}
