package js

import (
	"sort"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// timer represents a scheduled timer (setTimeout or setInterval).
type timer struct {
	id       int
	callback goja.Callable
	args     []goja.Value
	dueTime  time.Time
	interval time.Duration // 0 for setTimeout
	cleared  bool
}

// timerManager manages setTimeout and setInterval timers.
type timerManager struct {
	timers map[int]*timer
	nextID int
	now    func() time.Time
	mu     sync.Mutex
}

func newTimerManager() *timerManager {
	return &timerManager{
		timers: make(map[int]*timer),
		nextID: 1,
		now:    time.Now,
	}
}

func (tm *timerManager) add(callback goja.Callable, delay, interval time.Duration, args []goja.Value) int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	id := tm.nextID
	tm.nextID++
	tm.timers[id] = &timer{
		id:       id,
		callback: callback,
		args:     args,
		dueTime:  tm.now().Add(delay),
		interval: interval,
	}
	return id
}

// setTimeout schedules a one-time callback.
func (tm *timerManager) setTimeout(callback goja.Callable, delay time.Duration, args []goja.Value) int {
	return tm.add(callback, delay, 0, args)
}

// setInterval schedules a recurring callback.
func (tm *timerManager) setInterval(callback goja.Callable, interval time.Duration, args []goja.Value) int {
	return tm.add(callback, interval, interval, args)
}

// clearTimer clears a timer by ID. Unknown IDs are ignored.
func (tm *timerManager) clearTimer(id int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if t, ok := tm.timers[id]; ok {
		t.cleared = true
		delete(tm.timers, id)
	}
}

// process runs the timers that are due, earliest first and in creation
// order among equal due times.
func (tm *timerManager) process(r *Runtime) {
	tm.mu.Lock()
	now := tm.now()
	var due []*timer
	for _, t := range tm.timers {
		if !t.cleared && !t.dueTime.After(now) {
			due = append(due, t)
		}
	}
	tm.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].dueTime.Equal(due[j].dueTime) {
			return due[i].id < due[j].id
		}
		return due[i].dueTime.Before(due[j].dueTime)
	})

	for _, t := range due {
		tm.mu.Lock()
		cleared := t.cleared
		tm.mu.Unlock()
		if cleared {
			continue
		}

		r.call(t.callback, goja.Undefined(), t.args...)

		tm.mu.Lock()
		if t.interval > 0 && !t.cleared {
			t.dueTime = tm.now().Add(t.interval)
		} else {
			delete(tm.timers, t.id)
		}
		tm.mu.Unlock()
	}
}

// hasPending returns true if there are any pending timers.
func (tm *timerManager) hasPending() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.timers) > 0
}
