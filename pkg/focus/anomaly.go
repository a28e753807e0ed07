package focus

import "github.com/livekit/protocol/logger"

// LoggerAnomalyReporter reports anomalies as structured warning log lines.
// It exists for deployments (and the demo) that want the timeout-driven
// anomaly visible in their log stream without standing up a real telemetry
// sink; a production deployment would instead install (via
// WithAnomalyReporter) an AnomalyReporter backed by something like an
// error-tracking client.
type LoggerAnomalyReporter struct {
	log logger.Logger
}

// NewLoggerAnomalyReporter wraps log as an AnomalyReporter.
func NewLoggerAnomalyReporter(log logger.Logger) *LoggerAnomalyReporter {
	return &LoggerAnomalyReporter{log: log}
}

func (r *LoggerAnomalyReporter) ReportAnomaly(id, message string, fields map[string]any) {
	kv := make([]any, 0, 2+2*len(fields))
	kv = append(kv, "anomalyID", id)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	r.log.Warnw("focus: anomaly reported", nil, append([]any{"message", message}, kv...)...)
}
