package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ettle/strcase"
)

// ErrUnknownMetric is returned when a metric name is not one of Metrics.
var ErrUnknownMetric = errors.New("dashboard: unknown metric")

// Metric names a plottable time-series field.
type Metric string

const (
	MetricFollowers  Metric = "followers"
	MetricEngagement Metric = "engagement"
	MetricPosts      Metric = "posts"
)

// Metrics lists the selectable metrics in display order.
var Metrics = []Metric{MetricFollowers, MetricEngagement, MetricPosts}

// ParseMetric normalizes and validates a metric name.
func ParseMetric(value string) (Metric, error) {
	candidate := Metric(strings.ToLower(strings.TrimSpace(value)))
	for _, m := range Metrics {
		if m == candidate {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, value)
}

// Label is the selector button caption.
func (m Metric) Label() string {
	return strcase.ToPascal(string(m))
}
