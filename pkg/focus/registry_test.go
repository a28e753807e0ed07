package focus

import "testing"

func TestRegistryAddIsDedupAndOrdered(t *testing.T) {
	r := newCallRegistry()
	p := newFakeProvider("P1")
	c1 := newFakeCall("c1", p, StateDialing)
	c2 := newFakeCall("c2", p, StateDialing)

	r.add(c1)
	r.add(c2)
	r.add(c1) // duplicate, ignored

	all := r.all()
	if len(all) != 2 || all[0] != Call(c1) || all[1] != Call(c2) {
		t.Fatalf("all() = %v, want [c1 c2]", all)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := newCallRegistry()
	p := newFakeProvider("P1")
	c1 := newFakeCall("c1", p, StateDialing)
	r.add(c1)
	r.remove(c1)

	if r.contains(c1) {
		t.Fatalf("contains(c1) = true after remove")
	}
	if len(r.all()) != 0 {
		t.Fatalf("all() should be empty after removing the only entry")
	}
}

func TestRegistryFocusableCallsForFiltersByProviderAndFocusability(t *testing.T) {
	r := newCallRegistry()
	p1 := newFakeProvider("P1")
	p2 := newFakeProvider("P2")
	c1 := newFakeCall("c1", p1, StateDialing)
	c2 := newFakeCall("c2", p2, StateDialing)
	c3 := newFakeCall("c3", p1, StateActive)
	c3.focusable = false

	r.add(c1)
	r.add(c2)
	r.add(c3)

	got := r.focusableCallsFor(p1)
	if len(got) != 1 || got[0] != Call(c1) {
		t.Fatalf("focusableCallsFor(p1) = %v, want [c1]", got)
	}
}
