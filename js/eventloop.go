package js

import (
	"sync"

	"github.com/dop251/goja"
)

// task represents a queued callback in the event loop.
type task struct {
	callback goja.Callable
	args     []goja.Value
}

// eventLoop holds the microtask queue. Timers live in the timerManager and
// animation frames in the bound dom.Window.
type eventLoop struct {
	microtasks []task
	mu         sync.Mutex
}

func newEventLoop() *eventLoop {
	return &eventLoop{}
}

// queueMicrotask adds a microtask to the queue.
func (el *eventLoop) queueMicrotask(callback goja.Callable, args []goja.Value) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.microtasks = append(el.microtasks, task{callback: callback, args: args})
}

// drain runs microtasks until the queue is empty, including those queued
// while draining.
func (el *eventLoop) drain(r *Runtime) {
	for {
		el.mu.Lock()
		if len(el.microtasks) == 0 {
			el.mu.Unlock()
			return
		}
		t := el.microtasks[0]
		el.microtasks = el.microtasks[1:]
		el.mu.Unlock()

		r.call(t.callback, goja.Undefined(), t.args...)
	}
}

// runOnce processes one iteration of the event loop: microtasks, due
// timers, then one batch of animation frames, draining microtasks after
// each step. Returns true if there is more work pending.
func (el *eventLoop) runOnce(r *Runtime) bool {
	el.drain(r)
	r.timers.process(r)
	el.drain(r)
	if r.window != nil {
		if n := r.window.RunAnimationFrames(r.now()); n > 0 {
			tracer().Debugf("ran %d animation frame callbacks", n)
		}
		el.drain(r)
	}
	return r.HasPendingWork()
}

// hasPending returns true if there are any pending tasks.
func (el *eventLoop) hasPending() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	return len(el.microtasks) > 0
}
