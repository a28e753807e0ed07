package focus

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/livekit/protocol/logger"
)

// pendingRequest is a focus hand-off in progress, awaiting the outgoing
// provider's voluntary release or the release timeout.
type pendingRequest struct {
	call     Call
	callback RequestFocusCallback
}

// callSnapshot and providerSnapshot let off-thread readers observe the last
// known focus call/provider without racing the dispatch goroutine's writes.
type callSnapshot struct{ call Call }
type providerSnapshot struct{ p Provider }

// Manager is the focus state machine described by spec: it owns the call
// registry, the (current provider, current focus call) pair and the
// pending hand-off request, and serializes every mutation onto a single
// dispatch goroutine.
type Manager struct {
	cfg             Config
	log             logger.Logger
	callsManager    CallsManagerRequester
	anomalyReporter AnomalyReporter

	disp *dispatcher

	// Dispatch-goroutine-owned state. Never touched from any other
	// goroutine.
	registry          *callRegistry
	currentProvider   Provider
	currentFocusCall  Call
	pending           *pendingRequest
	releaseTimer      *time.Timer
	history           *historyLog
	focusListener     FocusListener
	callsListener     CallsManagerListener

	// Cross-goroutine snapshots, published by the dispatch goroutine.
	lastFocusCall atomic.Pointer[callSnapshot]
	lastProvider  atomic.Pointer[providerSnapshot]
}

// Option customizes Manager construction.
type Option func(*Manager)

// WithAnomalyReporter installs a non-default anomaly-reporting sink.
func WithAnomalyReporter(r AnomalyReporter) Option {
	return func(m *Manager) { m.anomalyReporter = r }
}

// WithLogger installs a non-default logger. Defaults to logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager creates a Manager wired to the given calls-manager requester.
// It does not register the manager's CallsManagerListener with the
// requester; Start does that.
func NewManager(ctx context.Context, cfg Config, requester CallsManagerRequester, opts ...Option) *Manager {
	m := &Manager{
		cfg:             cfg,
		log:             logger.GetLogger(),
		callsManager:    requester,
		anomalyReporter: noopAnomalyReporter{},
		disp:            newDispatcher(ctx),
		registry:        newCallRegistry(),
		history:         newHistoryLog(cfg.HistorySize),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.focusListener = &focusListenerAdapter{m: m}
	m.callsListener = &callsManagerListenerAdapter{m: m}
	return m
}

// Start launches the dispatch goroutine and registers the manager's
// CallsManagerListener with the calls-manager collaborator.
func (m *Manager) Start() error {
	if err := m.disp.start(); err != nil {
		return err
	}
	m.callsManager.SetCallsManagerListener(m.callsListener)
	return nil
}

// Stop stops the dispatch goroutine and waits for it to exit. Events still
// queued when Stop is called are not drained and may never run. In-flight
// release timers are stopped without firing.
func (m *Manager) Stop() error {
	err := m.disp.stop()
	if m.releaseTimer != nil {
		m.releaseTimer.Stop()
	}
	return err
}

// --- internal subroutines, always called on the dispatch goroutine ---

func (m *Manager) updateProvider(newProvider Provider) {
	if providersEqual(newProvider, m.currentProvider) {
		return
	}
	if newProvider != nil {
		newProvider.SetListener(m.focusListener)
		newProvider.FocusGained()
	}
	m.currentProvider = newProvider
	m.lastProvider.Store(&providerSnapshot{p: newProvider})
	m.log.Debugw("focus: provider updated", "provider", providerName(newProvider))
}

func (m *Manager) recomputeFocusCall() {
	previous := m.currentFocusCall
	m.currentFocusCall = nil

	if m.currentProvider != nil {
		for _, call := range m.registry.focusableCallsFor(m.currentProvider) {
			if PriorityStates[call.State()] {
				m.currentFocusCall = call
				break
			}
		}
	}

	if previous != m.currentFocusCall {
		if m.currentFocusCall != nil {
			m.history.add(m.currentFocusCall.ID())
		} else {
			m.history.add(noFocusEntry)
		}
		m.log.Debugw("focus: focus call changed", "call", callID(m.currentFocusCall))
	}
	m.lastFocusCall.Store(&callSnapshot{call: m.currentFocusCall})
}

func (m *Manager) armReleaseTimeout() {
	m.releaseTimer = time.AfterFunc(m.cfg.ReleaseTimeout, func() {
		_, _ = m.disp.aDo(m.handleReleaseFocusTimeout)
	})
}

func (m *Manager) cancelReleaseTimeout() {
	if m.releaseTimer != nil {
		m.releaseTimer.Stop()
		m.releaseTimer = nil
	}
}

// --- event handlers ---

func (m *Manager) handleRequestFocus(req *pendingRequest) {
	p := req.call.Provider()
	if m.currentProvider == nil || providersEqual(m.currentProvider, p) {
		m.updateProvider(p)
		m.recomputeFocusCall()
		invokeCallback(req.callback, req.call)
		return
	}

	// Cross-provider hand-off. A request received while a hand-off is
	// already in flight overwrites the pending target but leaves the
	// already-armed timer running: when it fires it observes whatever
	// pending request is current at that moment. See DESIGN.md.
	if m.pending == nil {
		m.currentProvider.FocusLost()
		m.armReleaseTimeout()
	}
	m.pending = req
}

func (m *Manager) handleReleaseConnectionFocus(p Provider) {
	if !providersEqual(p, m.currentProvider) {
		m.log.Debugw("focus: stale release ignored", "provider", providerName(p))
		return
	}
	m.cancelReleaseTimeout()

	req := m.pending
	m.pending = nil

	var next Provider
	if req != nil {
		next = req.call.Provider()
	}
	m.updateProvider(next)
	m.recomputeFocusCall()

	if req != nil {
		invokeCallback(req.callback, req.call)
	}
}

func (m *Manager) handleReleaseFocusTimeout() {
	req := m.pending
	if req == nil {
		// The timer callback runs on its own goroutine and may already have
		// enqueued this event before a matching release stopped the timer;
		// that release has cleared pending, so there is nothing to do.
		return
	}

	m.callsManager.ReleaseConnectionService(m.currentProvider)
	m.releaseTimer = nil
	m.pending = nil

	// updateProvider only ever notifies the incoming provider, so reusing
	// it here is safe even though the outgoing provider is presumed dead:
	// it was already told FocusLost when the hand-off began.
	m.updateProvider(req.call.Provider())
	m.recomputeFocusCall()
	invokeCallback(req.callback, req.call)
}

func (m *Manager) handleConnectionServiceDeath(p Provider) {
	if !providersEqual(p, m.currentProvider) {
		return
	}
	m.updateProvider(nil)
	m.recomputeFocusCall()
	// A hand-off in flight whose outgoing provider just died is left
	// pending: no callback fires until the release timeout elapses or
	// another ReleaseConnectionFocus (from the new provider losing focus
	// in turn) drives it. See DESIGN.md open question.
}

func (m *Manager) handleAddCall(call Call) {
	m.registry.add(call)
	if providersEqual(call.Provider(), m.currentProvider) {
		m.recomputeFocusCall()
	}
}

func (m *Manager) handleRemoveCall(call Call) {
	wasFocus := call == m.currentFocusCall
	m.registry.remove(call)
	if wasFocus {
		m.recomputeFocusCall()
	}
}

func (m *Manager) handleCallStateChanged(call Call, oldState, newState CallState) {
	if m.registry.contains(call) && providersEqual(call.Provider(), m.currentProvider) {
		m.recomputeFocusCall()
	}
}

func invokeCallback(cb RequestFocusCallback, call Call) {
	if cb != nil {
		cb(call)
	}
}

func providerName(p Provider) string {
	if p == nil {
		return "<none>"
	}
	return p.ComponentName()
}

func callID(c Call) string {
	if c == nil {
		return noFocusEntry
	}
	return c.ID()
}

// Dump writes the focus-call transition history to w, preceded by the
// "Call Focus History:" header line.
func (m *Manager) Dump(w io.Writer) error {
	if !m.disp.onDispatchGoroutine() {
		var err error
		derr := m.disp.do(func() { err = m.history.dump(w) })
		if derr != nil {
			return fmt.Errorf("focus: dump: %w", derr)
		}
		return err
	}
	return m.history.dump(w)
}
