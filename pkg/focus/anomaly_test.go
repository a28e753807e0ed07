package focus

import (
	"testing"

	"github.com/livekit/protocol/logger"
)

func TestLoggerAnomalyReporterDoesNotPanic(t *testing.T) {
	r := NewLoggerAnomalyReporter(logger.GetLogger())
	r.ReportAnomaly("edd7334a-ef87-432b-a1d0-a2f23959c73e", "timed out while getting the call focus",
		map[string]any{"lastKnownFocusCall": "c1"})
}
