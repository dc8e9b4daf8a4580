package js

import (
	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/dop251/goja"
)

// eventTarget is implemented by dom.Window and dom.Element.
type eventTarget interface {
	AddEventListener(eventType string, fn dom.EventListener) dom.ListenerID
	RemoveEventListener(eventType string, id dom.ListenerID) bool
	DispatchEvent(ev *dom.Event)
}

// scriptListener remembers which script function a Go listener handle
// belongs to, so removeEventListener can be called with the function.
type scriptListener struct {
	target    eventTarget
	eventType string
	fn        goja.Value
	id        dom.ListenerID
}

type listenerRegistry struct {
	listeners []scriptListener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{}
}

func (lr *listenerRegistry) find(target eventTarget, eventType string, fn goja.Value) int {
	for i, l := range lr.listeners {
		if l.target == target && l.eventType == eventType && l.fn.SameAs(fn) {
			return i
		}
	}
	return -1
}

// bindEventTarget adds addEventListener, removeEventListener and
// dispatchEvent to obj. Adding the same function twice for a type
// registers it once.
func (b *DOMBinder) bindEventTarget(obj *goja.Object, target eventTarget) {
	vm := b.runtime.vm
	registry := b.listener

	obj.Set("addEventListener", func(call goja.FunctionCall) goja.Value {
		eventType, fnValue := call.Argument(0).String(), call.Argument(1)
		callback, ok := goja.AssertFunction(fnValue)
		if !ok {
			return goja.Undefined()
		}
		if registry.find(target, eventType, fnValue) >= 0 {
			return goja.Undefined()
		}
		id := target.AddEventListener(eventType, func(ev *dom.Event) {
			jsEvent := vm.NewObject()
			jsEvent.Set("type", ev.Type)
			jsEvent.Set("target", obj)
			jsEvent.Set("stopImmediatePropagation", func(goja.FunctionCall) goja.Value {
				ev.StopImmediatePropagation()
				return goja.Undefined()
			})
			b.runtime.call(callback, obj, jsEvent)
		})
		registry.listeners = append(registry.listeners, scriptListener{
			target:    target,
			eventType: eventType,
			fn:        fnValue,
			id:        id,
		})
		return goja.Undefined()
	})

	obj.Set("removeEventListener", func(call goja.FunctionCall) goja.Value {
		eventType := call.Argument(0).String()
		i := registry.find(target, eventType, call.Argument(1))
		if i < 0 {
			return goja.Undefined()
		}
		target.RemoveEventListener(eventType, registry.listeners[i].id)
		registry.listeners = append(registry.listeners[:i], registry.listeners[i+1:]...)
		return goja.Undefined()
	})

	obj.Set("dispatchEvent", func(call goja.FunctionCall) goja.Value {
		eventType := call.Argument(0)
		if evObj, ok := eventType.(*goja.Object); ok {
			eventType = evObj.Get("type")
		}
		if eventType == nil || goja.IsUndefined(eventType) {
			panic(vm.NewTypeError("dispatchEvent: missing event type"))
		}
		target.DispatchEvent(dom.NewEvent(eventType.String()))
		return vm.ToValue(true)
	})
}
