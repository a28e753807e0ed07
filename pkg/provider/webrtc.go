package provider

import (
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/vopenia-io/callfocus/pkg/focus"
)

// WebRTCService is a focus.Provider that opens and closes a real
// webrtc.PeerConnection around the focus-gained/focus-lost lifecycle,
// standing in for a connection-service that acquires camera/microphone
// tracks while focused and releases them the moment focus is lost, minus
// any actual signaling or transport.
type WebRTCService struct {
	mu sync.Mutex

	name     string
	listener focus.FocusListener
	api      *webrtc.API

	pc *webrtc.PeerConnection
}

// NewWebRTCService builds a media engine with the default codec set and
// wraps it in an API instance used to mint a PeerConnection per focus
// session. Construction failures are folded into a nil api; FocusGained
// then degrades to a no-op, matching how a real provider would treat a
// missing media backend as an inert connection-service.
func NewWebRTCService(name string) *WebRTCService {
	m := &webrtc.MediaEngine{}
	var api *webrtc.API
	if err := m.RegisterDefaultCodecs(); err == nil {
		api = webrtc.NewAPI(webrtc.WithMediaEngine(m))
	}
	return &WebRTCService{name: name, api: api}
}

func (s *WebRTCService) FocusGained() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.api == nil || s.pc != nil {
		return
	}
	pc, err := s.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return
	}
	s.pc = pc
}

func (s *WebRTCService) FocusLost() {
	s.mu.Lock()
	pc := s.pc
	s.pc = nil
	s.mu.Unlock()
	if pc != nil {
		_ = pc.Close()
	}
}

func (s *WebRTCService) SetListener(l focus.FocusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

func (s *WebRTCService) ComponentName() string { return s.name }

// Release reports voluntary release, mirroring Service.Release.
func (s *WebRTCService) Release() {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		l.OnConnectionServiceReleased(s)
	}
}

// Die reports death, mirroring Service.Die.
func (s *WebRTCService) Die() {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l != nil {
		l.OnConnectionServiceDeath(s)
	}
}

// HasActivePeerConnection reports whether FocusGained currently holds an
// open PeerConnection (used by the demo to show resource acquisition
// tracking focus).
func (s *WebRTCService) HasActivePeerConnection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pc != nil
}
