package focus

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/frostbyte73/core"
)

// task is a unit of work run on the dispatcher's single goroutine.
type task struct {
	fn   func()
	done chan struct{}
}

// dispatcher is the single-consumer FIFO worker that serializes every
// mutation to the focus state machine. It is deliberately closure-based
// (each event handler is just a func() enqueued in order) rather than a
// hand-rolled tagged-union switch, mirroring the calls-manager's own
// single-threaded dispatch helper.
type dispatcher struct {
	ctx     context.Context
	cancel  context.CancelFunc
	ch      chan task
	started core.Fuse
	// stopping guards against a double Stop() call; stopped is broken by
	// the dispatch goroutine itself on exit, so waiting on stopped.Watch()
	// actually observes loop termination rather than the stop() call.
	stopping core.Fuse
	stopped  core.Fuse

	// runnerGID is the goroutine ID of the dispatch loop, captured once it
	// starts running. It lets CurrentFocusCall-style reads short-circuit
	// when called re-entrantly from within a handler instead of deadlocking
	// on a queue only the caller itself could drain.
	runnerGID atomic.Uint64
}

func newDispatcher(ctx context.Context) *dispatcher {
	ctx, cancel := context.WithCancel(ctx)
	return &dispatcher{
		ctx:    ctx,
		cancel: cancel,
		// buffered so producers enqueueing from within a handler (e.g. a
		// provider callback invoked inline that turns around and requests
		// focus again) don't deadlock against a full unbuffered channel.
		ch: make(chan task, 256),
	}
}

func (d *dispatcher) start() error {
	if !d.started.Break() {
		return fmt.Errorf("focus: dispatcher already started")
	}
	go func() {
		defer d.stopped.Break()
		d.runnerGID.Store(goroutineID())
		for {
			select {
			case t := <-d.ch:
				if t.fn != nil {
					t.fn()
				}
				close(t.done)
			case <-d.ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (d *dispatcher) stop() error {
	if !d.stopping.Break() {
		return fmt.Errorf("focus: dispatcher already stopped")
	}
	d.cancel()
	<-d.stopped.Watch()
	return nil
}

// onDispatchGoroutine reports whether the calling goroutine is the
// dispatcher's own loop.
func (d *dispatcher) onDispatchGoroutine() bool {
	return d.started.IsBroken() && !d.stopped.IsBroken() && goroutineID() == d.runnerGID.Load()
}

// do runs f on the dispatch goroutine and blocks until it completes.
func (d *dispatcher) do(f func()) error {
	done, err := d.aDo(f)
	if err != nil {
		return err
	}
	<-done
	return nil
}

// aDo enqueues f and returns immediately with a channel closed once f has
// run. Enqueue order is preserved: this is the only way events enter the
// FIFO.
func (d *dispatcher) aDo(f func()) (chan struct{}, error) {
	if !d.started.IsBroken() {
		return nil, fmt.Errorf("focus: dispatcher not started")
	}
	if d.stopping.IsBroken() {
		return nil, fmt.Errorf("focus: dispatcher already stopped")
	}
	t := task{fn: f, done: make(chan struct{})}
	d.ch <- t
	return t.done, nil
}

// goroutineID parses the running goroutine's numeric ID out of its own
// stack trace header ("goroutine 123 [running]:"). It is only used by
// onDispatchGoroutine, which CurrentFocusCall, CurrentFocusProvider and Dump
// consult to detect calls made from within a handler.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
