package focus

import "time"

// Config groups the manager's tunables. Zero-value Config is not usable
// directly; use DefaultConfig and override selectively.
type Config struct {
	// ReleaseTimeout bounds how long an outgoing provider has to
	// acknowledge FocusLost before it is forcibly torn down.
	ReleaseTimeout time.Duration
	// SyncReadTimeout bounds the off-thread CurrentFocusCall query.
	SyncReadTimeout time.Duration
	// HistorySize is the capacity of the focus-call transition ring log.
	HistorySize int
	// AnomalyReportOnFocusTimeout gates whether a CurrentFocusCall
	// timeout dumps handler state and reports an anomaly, versus only
	// logging a warning.
	AnomalyReportOnFocusTimeout bool
}

// DefaultConfig returns the tunables mandated by spec: a 5000ms release
// timeout, a 1000ms synchronous-read bound, and a 20-entry history ring.
func DefaultConfig() Config {
	return Config{
		ReleaseTimeout:              5000 * time.Millisecond,
		SyncReadTimeout:             1000 * time.Millisecond,
		HistorySize:                 20,
		AnomalyReportOnFocusTimeout: false,
	}
}
