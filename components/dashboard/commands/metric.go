package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-social-dashboard/components/dashboard"
)

// SelectMetricInput chooses the metric plotted by the growth chart.
type SelectMetricInput struct {
	Metric string `json:"metric"`
}

type metricSelector interface {
	SelectMetric(ctx context.Context, metric dashboard.Metric) error
}

// SelectMetricCommand validates and applies a metric selection.
type SelectMetricCommand struct {
	service   metricSelector
	telemetry Telemetry
}

// NewSelectMetricCommand creates the command.
func NewSelectMetricCommand(service metricSelector, telemetry Telemetry) *SelectMetricCommand {
	return &SelectMetricCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectMetricInput] = (*SelectMetricCommand)(nil)

// Execute applies the selection.
func (c *SelectMetricCommand) Execute(ctx context.Context, msg SelectMetricInput) error {
	if c.service == nil {
		return errors.New("select metric command requires service")
	}
	metric, err := dashboard.ParseMetric(msg.Metric)
	if err != nil {
		return err
	}
	if err := c.service.SelectMetric(ctx, metric); err != nil {
		return fmt.Errorf("select metric: %w", err)
	}
	c.telemetry.Record(ctx, "dashboard.command.metric", map[string]any{"metric": string(metric)})
	return nil
}
