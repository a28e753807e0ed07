package focus

// CallState mirrors the small slice of call lifecycle states the focus
// manager needs to reason about. A real calls-manager tracks a richer state
// machine; this enum only needs to answer "is this call eligible to be the
// focus call right now".
type CallState int

const (
	StateNew CallState = iota
	StateDialing
	StateRinging
	StateConnecting
	StateActive
	StateAudioProcessing
	StateHolding
	StateDisconnected
)

func (s CallState) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateDialing:
		return "DIALING"
	case StateRinging:
		return "RINGING"
	case StateConnecting:
		return "CONNECTING"
	case StateActive:
		return "ACTIVE"
	case StateAudioProcessing:
		return "AUDIO_PROCESSING"
	case StateHolding:
		return "HOLDING"
	case StateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}

// PriorityStates is the set of call states eligible to be the focus call.
var PriorityStates = map[CallState]bool{
	StateActive:          true,
	StateConnecting:      true,
	StateDialing:         true,
	StateAudioProcessing: true,
	StateRinging:         true,
}

// Provider is the opaque handle identifying a connection-service. It is
// implemented by the concrete provider (out of scope for this package) and
// consumed here by value: two Providers are the same provider iff
// providersEqual reports them equal, which falls back to comparing
// ComponentName when the two interface values themselves differ. Call
// equality, by contrast, is reference-based (see Call).
type Provider interface {
	// FocusGained notifies the provider it now holds connection-service
	// focus and may request shared call resources (camera, audio).
	FocusGained()
	// FocusLost notifies the provider it must release shared call
	// resources. The provider is expected to call back into the manager's
	// FocusListener once it has done so.
	FocusLost()
	// SetListener installs the listener the provider uses to report back
	// voluntary release and death.
	SetListener(l FocusListener)
	// ComponentName identifies the provider; providersEqual and logging
	// both use it.
	ComponentName() string
}

// providersEqual reports whether a and b are the same connection-service.
// Interface identity is checked first as a fast path (it also covers
// nil == nil and nil vs. non-nil); if that fails and both are non-nil, they
// are still the same provider if they report the same ComponentName, since a
// caller may hold two distinct interface values wrapping the same
// underlying component.
func providersEqual(a, b Provider) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.ComponentName() == b.ComponentName()
}

// Call is the opaque handle exposing what the focus manager needs to know
// about a call owned by a Provider.
type Call interface {
	Provider() Provider
	State() CallState
	IsFocusable() bool
	ID() string
}

// FocusListener is given to providers so they can report back to the
// manager. Implementations must translate these into enqueued events
// rather than mutating manager state directly.
type FocusListener interface {
	OnConnectionServiceReleased(p Provider)
	OnConnectionServiceDeath(p Provider)
}

// RequestFocusCallback is invoked at most once per RequestFocus call, on
// the manager's dispatch goroutine, once the request has been resolved
// (immediately for a same-provider request, or after hand-off completes,
// voluntarily or via timeout, for a cross-provider request). A pending
// cross-provider request overwritten by a newer one never has its callback
// invoked.
type RequestFocusCallback func(call Call)

// CallsManagerRequester is the external collaborator that listens to call
// lifecycle and performs provider teardown. The manager never talks to the
// calls-manager directly except through this interface.
type CallsManagerRequester interface {
	// ReleaseConnectionService forcibly tears down a non-responsive
	// provider. Called when a provider fails to acknowledge FocusLost
	// within the release timeout.
	ReleaseConnectionService(p Provider)
	// SetCallsManagerListener installs the listener the calls-manager uses
	// to report call-lifecycle notifications.
	SetCallsManagerListener(l CallsManagerListener)
}

// CallsManagerListener is given to the calls-manager collaborator so it can
// report call lifecycle events. Implementations (the boundary adapter in
// this package) translate these into enqueued events, filtering external
// calls out at the boundary before they ever reach the state machine.
type CallsManagerListener interface {
	OnCallAdded(call Call)
	OnCallRemoved(call Call)
	OnCallStateChanged(call Call, oldState, newState CallState)
	OnExternalCallChanged(call Call, isExternal bool)
}

// AnomalyReporter is the logging/anomaly-reporting sink external
// collaborator. It is consulted only when AnomalyReportOnFocusTimeout is
// enabled and a synchronous CurrentFocusCall read exceeds its bound.
type AnomalyReporter interface {
	ReportAnomaly(id, message string, fields map[string]any)
}

// noopAnomalyReporter is the default AnomalyReporter: it does nothing.
type noopAnomalyReporter struct{}

func (noopAnomalyReporter) ReportAnomaly(string, string, map[string]any) {}
