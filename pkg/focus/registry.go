package focus

// callRegistry is the ordered, duplicate-free sequence of tracked calls.
// It is owned exclusively by the manager's dispatch goroutine (no
// synchronization of its own).
type callRegistry struct {
	calls []Call
}

func newCallRegistry() *callRegistry {
	return &callRegistry{}
}

func (r *callRegistry) add(call Call) {
	if r.contains(call) {
		return
	}
	r.calls = append(r.calls, call)
}

func (r *callRegistry) remove(call Call) {
	for i, c := range r.calls {
		if c == call {
			r.calls = append(r.calls[:i], r.calls[i+1:]...)
			return
		}
	}
}

func (r *callRegistry) contains(call Call) bool {
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

// focusableCallsFor iterates, in registry order, the calls owned by p that
// are focusable.
func (r *callRegistry) focusableCallsFor(p Provider) []Call {
	var out []Call
	for _, c := range r.calls {
		if providersEqual(c.Provider(), p) && c.IsFocusable() {
			out = append(out, c)
		}
	}
	return out
}

func (r *callRegistry) all() []Call {
	return append([]Call(nil), r.calls...)
}
