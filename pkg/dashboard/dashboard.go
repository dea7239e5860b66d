// Package dashboard wires the social dashboard from a loaded configuration.
package dashboard

import (
	core "github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/pkg/analytics"
	"github.com/goliatone/go-social-dashboard/pkg/config"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// OptionsFromConfig maps configuration onto service options. Refresh hooks
// are left to the caller.
func OptionsFromConfig(cfg *config.Config, telemetry core.Telemetry) (Options, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	source, err := SourceFromConfig(cfg, telemetry)
	if err != nil {
		return Options{}, err
	}
	metric, err := core.ParseMetric(cfg.DefaultMetric)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Source: source,
		Days:   cfg.Days,
		Notifications: core.NewNotificationBuffer(
			core.WithNotificationCapacity(cfg.NotificationCapacity),
			core.WithNotificationMessage(cfg.NotificationMessage),
		),
		Telemetry:       telemetry,
		RefreshInterval: cfg.RefreshInterval,
		DarkMode:        cfg.DarkMode,
		Metric:          metric,
		ScheduledPosts:  cfg.ScheduledPosts,
	}, nil
}

// SourceFromConfig returns the remote analytics source when a URL is set,
// falling back to the mock generator; otherwise the mock generator alone.
func SourceFromConfig(cfg *config.Config, telemetry core.Telemetry) (core.DataSource, error) {
	random := core.NewRandomSource(core.WithSeed(cfg.Seed))
	if !cfg.Source.Remote() {
		return random, nil
	}
	client, err := analytics.NewHTTPClient(analytics.HTTPConfig{
		BaseURL: cfg.Source.URL,
		APIKey:  cfg.Source.APIKey,
	})
	if err != nil {
		return nil, err
	}
	return analytics.NewSource(client,
		analytics.WithFallback(random),
		analytics.WithTimeout(cfg.Source.Timeout),
		analytics.WithTelemetry(telemetry),
	), nil
}

// ChartRendererFromConfig builds the chart renderer with the configured cache
// and assets host.
func ChartRendererFromConfig(cfg *config.Config) *core.ChartRenderer {
	opts := []core.ChartRendererOption{
		core.WithChartCache(core.NewChartCache(cfg.Charts.CacheTTL)),
	}
	if cfg.Charts.AssetsHost != "" {
		opts = append(opts, core.WithChartAssetsHost(cfg.Charts.AssetsHost))
	}
	return core.NewChartRenderer(opts...)
}
