// Package callsmanager provides a minimal, in-memory reference
// implementation of the calls-manager collaborator that focus.Manager talks
// to through focus.CallsManagerRequester. A production calls-manager also
// drives dialing, ringing and teardown of real connection services; this
// package only implements the sliver of behavior the focus manager
// exercises: recording forced teardowns and fanning out lifecycle
// notifications to whichever listener registered itself (the focus
// manager, in practice).
package callsmanager

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/livekit/protocol/logger"

	"github.com/vopenia-io/callfocus/pkg/focus"
)

const (
	// maxTeardownCache bounds how many forced-teardown records are kept.
	maxTeardownCache = 5000
	// teardownCacheTTL is how long a forced-teardown record survives, kept
	// short since it only exists to answer "did we just force this
	// provider down" for diagnostics/dedup, not as an audit log.
	teardownCacheTTL = time.Minute
)

// Registry is a reference CallsManagerRequester: it remembers forced
// teardown requests and lets the demo/tests drive call lifecycle
// notifications toward whatever listener registered.
type Registry struct {
	log logger.Logger

	listener focus.CallsManagerListener
	torndown *expirable.LRU[string, time.Time]
}

// New creates an empty Registry.
func New(log logger.Logger) *Registry {
	return &Registry{
		log:      log,
		torndown: expirable.NewLRU[string, time.Time](maxTeardownCache, nil, teardownCacheTTL),
	}
}

// ReleaseConnectionService implements focus.CallsManagerRequester. It is
// invoked by the focus manager when a provider fails to acknowledge
// FocusLost within the release timeout.
func (r *Registry) ReleaseConnectionService(p focus.Provider) {
	if p == nil {
		return
	}
	r.log.Warnw("callsmanager: forcing teardown of non-responsive provider", nil,
		"provider", p.ComponentName())
	r.torndown.Add(p.ComponentName(), time.Now())
}

// SetCallsManagerListener implements focus.CallsManagerRequester.
func (r *Registry) SetCallsManagerListener(l focus.CallsManagerListener) {
	r.listener = l
}

// WasForceReleased reports whether component was force-torn-down within
// the last teardownCacheTTL (used by tests and the demo to assert forced
// teardown occurred).
func (r *Registry) WasForceReleased(component string) bool {
	_, ok := r.torndown.Get(component)
	return ok
}

// NotifyCallAdded fans a call-added notification out to the registered
// listener. The listener itself (focus.Manager's boundary adapter) is
// responsible for filtering external calls; Registry, like the real
// calls-manager, notifies unconditionally and lets the core decide.
func (r *Registry) NotifyCallAdded(call ExternalAwareCall) {
	if r.listener != nil {
		r.listener.OnCallAdded(call)
	}
}

// NotifyCallRemoved fans a call-removed notification out to the registered
// listener.
func (r *Registry) NotifyCallRemoved(call ExternalAwareCall) {
	if r.listener != nil {
		r.listener.OnCallRemoved(call)
	}
}

// NotifyCallStateChanged fans a state-change notification out to the
// registered listener.
func (r *Registry) NotifyCallStateChanged(call ExternalAwareCall, oldState, newState focus.CallState) {
	if r.listener != nil {
		r.listener.OnCallStateChanged(call, oldState, newState)
	}
}

// NotifyExternalCallChanged fans an external-call-changed notification out
// to the registered listener, which translates it into AddCall/RemoveCall
// (an externality change is not itself a distinct lifecycle event).
func (r *Registry) NotifyExternalCallChanged(call ExternalAwareCall, isExternal bool) {
	if r.listener == nil {
		return
	}
	r.listener.OnExternalCallChanged(call, isExternal)
}

// ExternalAwareCall extends focus.Call with the is-external-call bit the
// boundary uses to decide whether a notification reaches the core at all.
type ExternalAwareCall interface {
	focus.Call
	IsExternalCall() bool
}
