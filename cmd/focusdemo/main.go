// Command focusdemo drives a focus.Manager through the hand-off scenarios
// described alongside the focus package, printing each transition and the
// resulting call-focus history. It has no network surface of its own: every
// provider and call in the walkthrough is an in-memory stand-in from
// pkg/provider.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/livekit/protocol/logger"

	"github.com/vopenia-io/callfocus/pkg/callsmanager"
	"github.com/vopenia-io/callfocus/pkg/focus"
	"github.com/vopenia-io/callfocus/pkg/provider"
)

func main() {
	log := logger.GetLogger()
	cm := callsmanager.New(log)
	cfg := focus.DefaultConfig()
	cfg.AnomalyReportOnFocusTimeout = true
	mgr := focus.NewManager(context.Background(), cfg, cm,
		focus.WithLogger(log),
		focus.WithAnomalyReporter(focus.NewLoggerAnomalyReporter(log)))
	if err := mgr.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "start:", err)
		os.Exit(1)
	}
	defer mgr.Stop()

	p1 := provider.New("dialer-app")
	p2 := provider.NewWebRTCService("video-app")

	c1 := provider.NewCall("", p1, focus.StateDialing)
	cm.NotifyCallAdded(c1)
	requestFocus(mgr, c1)
	waitFor(mgr, c1)
	fmt.Printf("S1: %s holds focus via %s (gained=%d)\n", c1.ID(), p1.ComponentName(), p1.GainedCount())

	c2 := provider.NewCall("", p2, focus.StateDialing)
	cm.NotifyCallAdded(c2)

	fmt.Println("S2: requesting focus for a second provider, expecting a voluntary release...")
	requestFocus(mgr, c2)
	time.Sleep(20 * time.Millisecond)
	p1.Release()
	waitFor(mgr, c2)
	fmt.Printf("S2: %s now holds focus via %s (active peer connection: %v)\n",
		c2.ID(), p2.ComponentName(), p2.HasActivePeerConnection())

	p3 := provider.New("legacy-app")
	c3 := provider.NewCall("", p3, focus.StateRinging)
	cm.NotifyCallAdded(c3)

	fmt.Println("S3: requesting focus once more, this time letting the release timeout fire...")
	requestFocus(mgr, c3)
	waitFor(mgr, c3)
	fmt.Printf("S3: %s now holds focus via %s; video-app force-released: %v\n",
		c3.ID(), p3.ComponentName(), cm.WasForceReleased(p2.ComponentName()))
	p2.FocusLost() // release whatever media resources are still held

	fmt.Println()
	if err := mgr.Dump(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dump:", err)
	}
}

func requestFocus(mgr *focus.Manager, call focus.Call) {
	mgr.RequestFocus(call, func(focus.Call) {})
}

func waitFor(mgr *focus.Manager, call focus.Call) {
	deadline := time.Now().Add(6 * time.Second)
	for time.Now().Before(deadline) {
		if mgr.CurrentFocusCall() == call {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}
