package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-social-dashboard/components/dashboard"
	"github.com/goliatone/go-social-dashboard/pkg/config"
)

type snapshotCmd struct {
	Format string `enum:"yaml,json" default:"yaml" help:"Output format."`
	Ticks  int    `default:"0" help:"Simulated refresh ticks to run after mount."`
}

func (cmd *snapshotCmd) Run(ctx context.Context, g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	snapshot, err := takeSnapshot(ctx, cfg, dashboard.NewLogrusTelemetry(logger), cmd.Ticks)
	if err != nil {
		return err
	}
	return writeSnapshot(os.Stdout, snapshot, cmd.Format)
}

// takeSnapshot mounts a service, runs ticks refreshes and returns the state.
func takeSnapshot(ctx context.Context, cfg *config.Config, telemetry dashboard.Telemetry, ticks int) (dashboard.Snapshot, error) {
	service, _, err := newService(cfg, telemetry, manualTicker)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	if err := service.Mount(ctx); err != nil {
		return dashboard.Snapshot{}, err
	}
	defer service.Unmount(ctx)
	for i := 0; i < ticks; i++ {
		if err := service.Refresh(ctx, dashboard.RefreshTick); err != nil {
			return dashboard.Snapshot{}, err
		}
	}
	return service.Snapshot(), nil
}

func writeSnapshot(w io.Writer, snapshot dashboard.Snapshot, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshot)
	case "yaml", "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(snapshot); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("socialdash: unknown format %q", format)
	}
}
