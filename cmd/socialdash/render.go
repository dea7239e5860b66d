package main

import (
	"context"
	"io"
	"os"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/pkg/config"
	dashboardpkg "github.com/goliatone/go-social-dashboard/pkg/dashboard"
)

type renderCmd struct {
	Output        string `short:"o" default:"-" help:"Output file ('-' writes to stdout)."`
	Dark          bool   `help:"Render in dark mode."`
	Metric        string `help:"Metric plotted by the growth chart (followers, engagement, posts)."`
	Notifications bool   `help:"Render with the notification panel open."`
	Ticks         int    `default:"0" help:"Simulated refresh ticks to run after mount."`
}

func (cmd *renderCmd) Run(ctx context.Context, g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	out := io.Writer(os.Stdout)
	if cmd.Output != "-" {
		file, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	return cmd.render(ctx, cfg, dashboard.NewLogrusTelemetry(logger), out)
}

func (cmd *renderCmd) render(ctx context.Context, cfg *config.Config, telemetry dashboard.Telemetry, out io.Writer) error {
	if cmd.Dark {
		cfg.DarkMode = true
	}
	service, _, err := newService(cfg, telemetry, manualTicker)
	if err != nil {
		return err
	}
	if cmd.Metric != "" {
		if err := service.SelectMetric(ctx, dashboard.Metric(cmd.Metric)); err != nil {
			return err
		}
	}
	if cmd.Notifications {
		service.SetNotificationsVisible(ctx, true)
	}
	if err := service.Mount(ctx); err != nil {
		return err
	}
	defer service.Unmount(ctx)
	for i := 0; i < cmd.Ticks; i++ {
		if err := service.Refresh(ctx, dashboard.RefreshTick); err != nil {
			return err
		}
	}

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return err
	}
	controller := dashboard.NewController(dashboard.ControllerOptions{
		Service:  service,
		Renderer: renderer,
		Charts:   dashboardpkg.ChartRendererFromConfig(cfg),
		APIBase:  cfg.HTTP.BasePath + "/dashboard",
	})
	return controller.RenderTemplate(ctx, out)
}
