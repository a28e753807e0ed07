package focus

import (
	"bytes"
	"time"
)

// This file holds the external-boundary adapters: translating collaborator
// callbacks into enqueued events, and exposing the synchronous
// CurrentFocusCall/CurrentFocusProvider reads.

// RequestFocus enqueues a focus request for call. callback, if non-nil, is
// invoked at most once, on the dispatch goroutine, once the request
// resolves. A cross-provider request that is overwritten by a later one
// while its hand-off is still pending never resolves, and its callback is
// never invoked.
func (m *Manager) RequestFocus(call Call, callback RequestFocusCallback) {
	req := &pendingRequest{call: call, callback: callback}
	_, _ = m.disp.aDo(func() { m.handleRequestFocus(req) })
}

// CurrentFocusCall returns the call currently holding connection-service
// focus, or nil. Called from the dispatch goroutine it returns directly;
// called from any other goroutine it round-trips a query through the
// dispatch queue bounded by cfg.SyncReadTimeout, falling back to the last
// observed value on timeout.
func (m *Manager) CurrentFocusCall() Call {
	if m.disp.onDispatchGoroutine() {
		return m.currentFocusCall
	}

	result := make(chan Call, 1)
	_, err := m.disp.aDo(func() { result <- m.currentFocusCall })
	if err != nil {
		return m.snapshotFocusCall()
	}

	select {
	case call := <-result:
		return call
	case <-time.After(m.cfg.SyncReadTimeout):
		last := m.snapshotFocusCall()
		if m.cfg.AnomalyReportOnFocusTimeout {
			m.log.Warnw("focus: timed out waiting for synchronous current focus, returning possibly inaccurate result and dumping handler state", nil,
				"lastKnownFocusCall", callID(last))
			// The dump is enqueued rather than awaited so this read stays
			// bounded even when the dispatch goroutine is stuck.
			_, _ = m.disp.aDo(func() {
				var buf bytes.Buffer
				_ = m.history.dump(&buf)
				m.log.Infow("focus: handler dump on timeout", "dump", buf.String())
			})
			m.anomalyReporter.ReportAnomaly(
				"edd7334a-ef87-432b-a1d0-a2f23959c73e",
				"timed out while getting the call focus",
				map[string]any{"lastKnownFocusCall": callID(last)},
			)
		} else {
			m.log.Warnw("focus: timed out waiting for synchronous current focus, returning possibly inaccurate result", nil)
		}
		return last
	}
}

// CurrentFocusProvider returns the current connection-service focus
// provider. This is an unsynchronized-in-spirit read of a published
// snapshot: it may be stale if called off the dispatch goroutine.
func (m *Manager) CurrentFocusProvider() Provider {
	if m.disp.onDispatchGoroutine() {
		return m.currentProvider
	}
	if snap := m.lastProvider.Load(); snap != nil {
		return snap.p
	}
	return nil
}

func (m *Manager) snapshotFocusCall() Call {
	if snap := m.lastFocusCall.Load(); snap != nil {
		return snap.call
	}
	return nil
}

// --- collaborator boundary adapters ---

// focusListenerAdapter is installed on the current provider so it can
// report voluntary release and death back into the manager. It only
// enqueues events; it never touches manager state directly.
type focusListenerAdapter struct {
	m *Manager
}

func (a *focusListenerAdapter) OnConnectionServiceReleased(p Provider) {
	_, _ = a.m.disp.aDo(func() { a.m.handleReleaseConnectionFocus(p) })
}

func (a *focusListenerAdapter) OnConnectionServiceDeath(p Provider) {
	_, _ = a.m.disp.aDo(func() { a.m.handleConnectionServiceDeath(p) })
}

// externalAware is implemented by concrete Call types that can be external
// (owned by another process/app and merely mirrored locally). It is not
// part of the Call interface itself: externality is a property the
// boundary consults before a call ever becomes relevant to the state
// machine, not something the core needs to reason about afterward.
type externalAware interface {
	IsExternalCall() bool
}

// isExternal reports whether call is external at this moment. Calls for
// which this holds are filtered here and never enqueued.
func isExternal(call Call) bool {
	ec, ok := call.(externalAware)
	return ok && ec.IsExternalCall()
}

// callsManagerListenerAdapter is installed on the calls-manager
// collaborator so it can report call lifecycle notifications. Calls that
// are external at the moment of notification are filtered here and never
// enqueued; the core never sees them.
type callsManagerListenerAdapter struct {
	m *Manager
}

func (a *callsManagerListenerAdapter) OnCallAdded(call Call) {
	if isExternal(call) {
		return
	}
	_, _ = a.m.disp.aDo(func() { a.m.handleAddCall(call) })
}

func (a *callsManagerListenerAdapter) OnCallRemoved(call Call) {
	if isExternal(call) {
		return
	}
	_, _ = a.m.disp.aDo(func() { a.m.handleRemoveCall(call) })
}

func (a *callsManagerListenerAdapter) OnCallStateChanged(call Call, oldState, newState CallState) {
	if isExternal(call) {
		return
	}
	_, _ = a.m.disp.aDo(func() { a.m.handleCallStateChanged(call, oldState, newState) })
}

// OnExternalCallChanged translates the boolean transition into AddCall
// (no longer external) or RemoveCall (now external): externality change is
// not itself a distinct event the state machine reasons about.
func (a *callsManagerListenerAdapter) OnExternalCallChanged(call Call, external bool) {
	if external {
		_, _ = a.m.disp.aDo(func() { a.m.handleRemoveCall(call) })
	} else {
		_, _ = a.m.disp.aDo(func() { a.m.handleAddCall(call) })
	}
}
