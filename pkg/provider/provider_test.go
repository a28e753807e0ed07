package provider

import (
	"testing"

	"github.com/vopenia-io/callfocus/pkg/focus"
)

type recordingListener struct {
	released []focus.Provider
	died     []focus.Provider
}

func (r *recordingListener) OnConnectionServiceReleased(p focus.Provider) {
	r.released = append(r.released, p)
}
func (r *recordingListener) OnConnectionServiceDeath(p focus.Provider) {
	r.died = append(r.died, p)
}

func TestServiceFocusCounters(t *testing.T) {
	s := New("dialer")
	s.FocusGained()
	s.FocusGained()
	s.FocusLost()

	if s.GainedCount() != 2 {
		t.Fatalf("GainedCount() = %d, want 2", s.GainedCount())
	}
	if s.LostCount() != 1 {
		t.Fatalf("LostCount() = %d, want 1", s.LostCount())
	}
}

func TestServiceReleaseAndDieBeforeListenerIsNoop(t *testing.T) {
	s := New("dialer")
	s.Release()
	s.Die()
}

func TestServiceReleaseAndDieNotifyListener(t *testing.T) {
	s := New("dialer")
	l := &recordingListener{}
	s.SetListener(l)

	s.Release()
	s.Die()

	if len(l.released) != 1 || l.released[0] != focus.Provider(s) {
		t.Fatalf("released = %v, want [s]", l.released)
	}
	if len(l.died) != 1 || l.died[0] != focus.Provider(s) {
		t.Fatalf("died = %v, want [s]", l.died)
	}
}

func TestNewGeneratesIDWhenNameEmpty(t *testing.T) {
	s := New("")
	if s.ComponentName() == "" {
		t.Fatalf("ComponentName() empty, want a generated id")
	}
}

func TestCallDefaults(t *testing.T) {
	p := New("dialer")
	c := NewCall("", p, focus.StateDialing)

	if c.ID() == "" {
		t.Fatalf("ID() empty, want a generated id")
	}
	if !c.IsFocusable() {
		t.Fatalf("IsFocusable() = false, want true by default")
	}
	if c.IsExternalCall() {
		t.Fatalf("IsExternalCall() = true, want false by default")
	}
	if c.Provider() != focus.Provider(p) {
		t.Fatalf("Provider() = %v, want p", c.Provider())
	}

	c.SetState(focus.StateActive)
	if c.State() != focus.StateActive {
		t.Fatalf("State() = %v, want ACTIVE", c.State())
	}

	c.SetFocusable(false)
	if c.IsFocusable() {
		t.Fatalf("IsFocusable() = true after SetFocusable(false)")
	}

	c.SetExternal(true)
	if !c.IsExternalCall() {
		t.Fatalf("IsExternalCall() = false after SetExternal(true)")
	}
}
