package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/pkg/config"
	dashboardpkg "github.com/goliatone/go-social-dashboard/pkg/dashboard"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string   `short:"c" type:"path" env:"SOCIALDASH_CONFIG" help:"Path to a YAML config file."`
	EnvFile []string `name:"env-file" help:"Dotenv files to load before reading the environment (default .env, .env.local)."`
}

type cli struct {
	Globals

	Serve    serveCmd    `cmd:"" default:"1" help:"Run the live dashboard server."`
	Snapshot snapshotCmd `cmd:"" help:"Print one dashboard state as YAML or JSON."`
	Render   renderCmd   `cmd:"" help:"Write the dashboard page as static HTML."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("socialdash"),
		kong.Description("Social media analytics dashboard with live mock data."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run(&app.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) load() (*config.Config, *logrus.Logger, error) {
	config.LoadEnv(nil, g.EnvFile...)
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("socialdash: %w", err)
	}
	return cfg, cfg.Logger(), nil
}

// newService builds a service from configuration. A nil ticker keeps the
// wall-clock timer. Extra hooks run after the notification buffer, which is
// returned for hooks that read it.
func newService(cfg *config.Config, telemetry dashboard.Telemetry, ticker dashboard.TickerFunc, hooks ...dashboard.RefreshHook) (*dashboard.Service, *dashboard.NotificationBuffer, error) {
	opts, err := dashboardpkg.OptionsFromConfig(cfg, telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("socialdash: %w", err)
	}
	opts.Ticker = ticker
	opts.RefreshHooks = append(opts.RefreshHooks, hooks...)
	return dashboardpkg.NewService(opts), opts.Notifications, nil
}

// manualTicker never fires; one-shot commands drive refreshes themselves.
func manualTicker(time.Duration) (<-chan time.Time, func()) {
	return nil, func() {}
}
