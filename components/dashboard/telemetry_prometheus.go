package dashboard

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusTelemetry counts telemetry events and exports the latest
// dashboard values. Register it as a RefreshHook to keep the gauges current.
type PrometheusTelemetry struct {
	events     *prometheus.CounterVec
	failures   *prometheus.CounterVec
	latest     *prometheus.GaugeVec
	engagement *prometheus.GaugeVec
	revision   prometheus.Gauge
	refreshes  prometheus.Counter
}

// NewPrometheusTelemetry builds the collectors and registers them with reg.
// A nil reg uses the default registerer.
func NewPrometheusTelemetry(namespace string, reg prometheus.Registerer) (*PrometheusTelemetry, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "socialdash"
	}
	t := &PrometheusTelemetry{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Dashboard telemetry events by name.",
		}, []string{"event"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_failures_total",
			Help:      "Dashboard telemetry events that carried an error.",
		}, []string{"event"}),
		latest: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "latest_value",
			Help:      "Newest time-series value per metric.",
		}, []string{"metric"}),
		engagement: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "engagement",
			Help:      "Engagement breakdown per category.",
		}, []string{"category"}),
		revision: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_revision",
			Help:      "Revision of the most recent refresh.",
		}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Completed data refreshes.",
		}),
	}
	var errs []error
	for _, c := range []prometheus.Collector{t.events, t.failures, t.latest, t.engagement, t.revision, t.refreshes} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Record implements Telemetry.
func (t *PrometheusTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil {
		return
	}
	t.events.WithLabelValues(event).Inc()
	if _, failed := payload["error"]; failed {
		t.failures.WithLabelValues(event).Inc()
	}
}

// DataRefreshed implements RefreshHook.
func (t *PrometheusTelemetry) DataRefreshed(_ context.Context, event RefreshEvent) error {
	if t == nil {
		return nil
	}
	t.revision.Set(float64(event.Revision))
	t.refreshes.Inc()
	if n := len(event.TimeSeries); n > 0 {
		point := event.TimeSeries[n-1]
		for _, m := range Metrics {
			t.latest.WithLabelValues(string(m)).Set(float64(point.Value(m)))
		}
	}
	for _, slice := range event.Engagement {
		t.engagement.WithLabelValues(slice.Name).Set(float64(slice.Value))
	}
	return nil
}

// MultiTelemetry fans events out to every non-nil sink.
func MultiTelemetry(sinks ...Telemetry) Telemetry {
	out := make(multiTelemetry, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiTelemetry []Telemetry

func (m multiTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	for _, s := range m {
		s.Record(ctx, event, payload)
	}
}
