// Package provider offers a minimal in-memory implementation of
// focus.Provider and focus.Call, grounded on the mutex-guarded
// getter/setter shape production state objects take (see e.g.
// pkg/sip/bfcp_session.go's BFCPSession).
// It exists for tests and the demo binary; a real deployment supplies its
// own ConnectionServiceFocus/CallFocus backed by an actual telephony stack.
package provider

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vopenia-io/callfocus/pkg/focus"
)

// Service is a fake connection-service provider. FocusGained/FocusLost
// increment counters callers can assert on; a real provider would instead
// start/stop touching camera and audio resources.
type Service struct {
	mu sync.Mutex

	name     string
	listener focus.FocusListener

	gainedCount int
	lostCount   int
}

// New creates a Service identified by name. If name is empty a random one
// is generated instead.
func New(name string) *Service {
	if name == "" {
		name = uuid.NewString()
	}
	return &Service{name: name}
}

func (s *Service) FocusGained() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gainedCount++
}

func (s *Service) FocusLost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lostCount++
}

func (s *Service) SetListener(l focus.FocusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

func (s *Service) ComponentName() string { return s.name }

// GainedCount returns how many times FocusGained fired.
func (s *Service) GainedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gainedCount
}

// LostCount returns how many times FocusLost fired.
func (s *Service) LostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lostCount
}

// Release reports voluntary release to whatever listener the focus manager
// installed. Safe to call even before SetListener has run; it is then a
// no-op, matching a provider that releases before ever being focused.
func (s *Service) Release() {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		l.OnConnectionServiceReleased(s)
	}
}

// Die reports death to whatever listener the focus manager installed.
func (s *Service) Die() {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		l.OnConnectionServiceDeath(s)
	}
}

// Call is a fake call owned by a Service.
type Call struct {
	id         string
	provider   focus.Provider
	state      focus.CallState
	focusable  bool
	isExternal bool

	mu sync.Mutex
}

// NewCall creates a focusable Call with the given state, owned by p.
func NewCall(id string, p focus.Provider, state focus.CallState) *Call {
	if id == "" {
		id = uuid.NewString()
	}
	return &Call{id: id, provider: p, state: state, focusable: true}
}

func (c *Call) Provider() focus.Provider { return c.provider }

func (c *Call) State() focus.CallState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Call) IsFocusable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focusable
}

func (c *Call) ID() string { return c.id }

// IsExternalCall implements the boundary-only externality check the focus
// package's adapter type-asserts for; it is not part of focus.Call itself.
func (c *Call) IsExternalCall() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isExternal
}

// SetState updates the call's state in place. It does not itself notify
// the focus manager; call CallsManagerListener.OnCallStateChanged (or
// callsmanager.Registry.NotifyCallStateChanged) to drive a recompute.
func (c *Call) SetState(s focus.CallState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// SetFocusable toggles whether the call can hold focus.
func (c *Call) SetFocusable(f bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusable = f
}

// SetExternal toggles the call's externality bit.
func (c *Call) SetExternal(external bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isExternal = external
}
