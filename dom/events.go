package dom

import (
	"sync"
)

// Event is a minimal DOM event carrying its type and target.
type Event struct {
	Type   string
	Target interface{}

	stopImmediate bool
}

// NewEvent creates an event of the given type.
func NewEvent(eventType string) *Event {
	return &Event{Type: eventType}
}

// StopImmediatePropagation prevents the remaining listeners on the current
// target from running.
func (ev *Event) StopImmediatePropagation() {
	ev.stopImmediate = true
}

// EventListener is a Go event callback.
type EventListener func(ev *Event)

// ListenerID identifies a registered listener so it can be removed again.
type ListenerID int

// eventListener represents a registered event listener.
type eventListener struct {
	id       ListenerID
	callback EventListener
}

// EventTarget manages event listeners for a target.
type EventTarget struct {
	listeners map[string][]eventListener
	nextID    ListenerID
	mu        sync.RWMutex
}

// NewEventTarget creates a new EventTarget.
func NewEventTarget() *EventTarget {
	return &EventTarget{
		listeners: make(map[string][]eventListener),
	}
}

// AddEventListener registers an event listener and returns its handle.
func (et *EventTarget) AddEventListener(eventType string, callback EventListener) ListenerID {
	et.mu.Lock()
	defer et.mu.Unlock()

	et.nextID++
	et.listeners[eventType] = append(et.listeners[eventType], eventListener{
		id:       et.nextID,
		callback: callback,
	})
	return et.nextID
}

// RemoveEventListener unregisters the listener with the given handle.
// It reports whether a listener was removed.
func (et *EventTarget) RemoveEventListener(eventType string, id ListenerID) bool {
	et.mu.Lock()
	defer et.mu.Unlock()

	listeners := et.listeners[eventType]
	for i, l := range listeners {
		if l.id == id {
			et.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return true
		}
	}
	return false
}

// DispatchEvent calls every listener registered for the event's type, in
// registration order. Listeners added during dispatch are not called.
func (et *EventTarget) DispatchEvent(event *Event) {
	et.mu.RLock()
	listeners := make([]eventListener, len(et.listeners[event.Type]))
	copy(listeners, et.listeners[event.Type])
	et.mu.RUnlock()

	for _, l := range listeners {
		if !et.isRegistered(event.Type, l.id) {
			continue
		}
		l.callback(event)
		if event.stopImmediate {
			break
		}
	}
}

// isRegistered reports whether a listener is still attached; listeners
// removed by an earlier callback in the same dispatch are skipped.
func (et *EventTarget) isRegistered(eventType string, id ListenerID) bool {
	et.mu.RLock()
	defer et.mu.RUnlock()
	for _, l := range et.listeners[eventType] {
		if l.id == id {
			return true
		}
	}
	return false
}

// ListenerCount returns how many listeners are registered for eventType.
func (et *EventTarget) ListenerCount(eventType string) int {
	et.mu.RLock()
	defer et.mu.RUnlock()
	return len(et.listeners[eventType])
}
