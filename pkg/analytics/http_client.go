package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads social metrics from a REST endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for a live analytics API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchTimeSeries implements SeriesClient via GET /timeseries?days=N.
func (c *HTTPClient) FetchTimeSeries(ctx context.Context, days int) ([]dashboard.TimeSeriesPoint, error) {
	query := url.Values{"days": []string{strconv.Itoa(days)}}
	var resp seriesResponse
	if err := c.do(ctx, "/timeseries?"+query.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.toPoints()
}

// FetchEngagement implements EngagementClient via GET /engagement.
func (c *HTTPClient) FetchEngagement(ctx context.Context) ([]dashboard.EngagementSlice, error) {
	var resp engagementResponse
	if err := c.do(ctx, "/engagement", &resp); err != nil {
		return nil, err
	}
	return resp.toSlices()
}

func (c *HTTPClient) do(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type seriesPoint struct {
	Date       string `json:"date"`
	Followers  int    `json:"followers"`
	Engagement int    `json:"engagement"`
	Posts      int    `json:"posts"`
}

type seriesResponse struct {
	Points []seriesPoint `json:"points"`
}

func (r seriesResponse) toPoints() ([]dashboard.TimeSeriesPoint, error) {
	out := make([]dashboard.TimeSeriesPoint, len(r.Points))
	for i, p := range r.Points {
		if p.Followers < 0 || p.Engagement < 0 || p.Posts < 0 {
			return nil, fmt.Errorf("analytics: negative metric on %s", p.Date)
		}
		out[i] = dashboard.TimeSeriesPoint{
			Date:       p.Date,
			Followers:  p.Followers,
			Engagement: p.Engagement,
			Posts:      p.Posts,
		}
	}
	return out, nil
}

type engagementSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type engagementResponse struct {
	Slices []engagementSlice `json:"slices"`
}

func (r engagementResponse) toSlices() ([]dashboard.EngagementSlice, error) {
	out := make([]dashboard.EngagementSlice, len(r.Slices))
	for i, s := range r.Slices {
		if s.Value < 0 {
			return nil, fmt.Errorf("analytics: negative engagement for %s", s.Name)
		}
		out[i] = dashboard.EngagementSlice{Name: s.Name, Value: s.Value}
	}
	return out, nil
}
