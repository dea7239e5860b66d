package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientFetchTimeSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timeseries" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("days"); got != "2" {
			t.Fatalf("expected days=2, got %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		resp := seriesResponse{Points: []seriesPoint{
			{Date: "1/1/2025", Followers: 5100, Engagement: 1200, Posts: 11},
			{Date: "1/2/2025", Followers: 5200, Engagement: 1300, Posts: 12},
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/", APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	points, err := client.FetchTimeSeries(context.Background(), 2)
	if err != nil {
		t.Fatalf("fetch series: %v", err)
	}
	if len(points) != 2 || points[1].Followers != 5200 {
		t.Fatalf("unexpected points: %#v", points)
	}
}

func TestHTTPClientFetchEngagement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/engagement" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"slices":[{"name":"Likes","value":4800},{"name":"Saves","value":800}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	slices, err := client.FetchEngagement(context.Background())
	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "Saves", slices[1].Name)
}

func TestHTTPClientRejectsNegativeValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"slices":[{"name":"Likes","value":-1}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.FetchEngagement(context.Background())
	assert.Error(t, err)
}

func TestHTTPClientRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.FetchTimeSeries(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{})
	assert.Error(t, err)
}
