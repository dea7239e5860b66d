package dashboard

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// LogrusTelemetry writes telemetry events as structured log entries.
type LogrusTelemetry struct {
	Logger logrus.FieldLogger
	Level  logrus.Level
}

// NewLogrusTelemetry logs events at debug level, errors at warn.
func NewLogrusTelemetry(logger logrus.FieldLogger) *LogrusTelemetry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusTelemetry{Logger: logger, Level: logrus.DebugLevel}
}

// Record implements Telemetry.
func (t *LogrusTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	if t == nil || t.Logger == nil {
		return
	}
	entry := t.Logger.WithFields(logrus.Fields(payload)).WithField("event", event)
	if _, failed := payload["error"]; failed {
		entry.Warn("dashboard event failed")
		return
	}
	switch t.Level {
	case logrus.InfoLevel:
		entry.Info("dashboard event")
	case logrus.TraceLevel:
		entry.Trace("dashboard event")
	default:
		entry.Debug("dashboard event")
	}
}
