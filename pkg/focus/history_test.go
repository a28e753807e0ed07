package focus

import (
	"strings"
	"testing"
)

func TestHistoryLogOrderedWithinCapacity(t *testing.T) {
	h := newHistoryLog(3)
	h.add("a")
	h.add("b")

	got := h.ordered()
	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("ordered() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered() = %v, want %v", got, want)
		}
	}
}

func TestHistoryLogWrapsAndOverwritesOldest(t *testing.T) {
	h := newHistoryLog(3)
	h.add("a")
	h.add("b")
	h.add("c")
	h.add("d")

	got := h.ordered()
	want := []string{"b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("ordered() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered() = %v, want %v", got, want)
		}
	}
}

func TestHistoryLogDumpHeader(t *testing.T) {
	h := newHistoryLog(20)
	h.add("call-1")
	h.add(noFocusEntry)

	var buf strings.Builder
	if err := h.dump(&buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Call Focus History:" {
		t.Fatalf("first line = %q, want header", lines[0])
	}
	if lines[1] != "call-1" || lines[2] != noFocusEntry {
		t.Fatalf("unexpected body: %v", lines[1:])
	}
}

func TestHistoryLogSizeFloor(t *testing.T) {
	h := newHistoryLog(0)
	h.add("only")
	h.add("replaces")
	got := h.ordered()
	if len(got) != 1 || got[0] != "replaces" {
		t.Fatalf("ordered() = %v, want a single-entry ring holding the latest add", got)
	}
}
