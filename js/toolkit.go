package js

import (
	"fmt"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/popper"
	"github.com/chrisuehlinger/vibeui/widget"
	"github.com/dop251/goja"
)

// setupToolkit installs the Popper, Tooltip and Popover constructors.
//
//	new Popper(node, {reference, placement, position, spacing, ...})
//	new Tooltip(trigger, {title, placement, ...})
//	new Popover(trigger, {title, content, placement, ...})
func (r *Runtime) setupToolkit() {
	b := r.binder
	r.vm.Set("Popper", b.newPopper)
	r.vm.Set("Tooltip", func(call goja.ConstructorCall) *goja.Object {
		return b.newWidget(call, "Tooltip", widget.DefaultTooltipSettings(),
			func(trigger *dom.Element, s widget.TooltipSettings) (widget.Widget, error) {
				return widget.NewTooltip(trigger, s)
			})
	})
	r.vm.Set("Popover", func(call goja.ConstructorCall) *goja.Object {
		return b.newWidget(call, "Popover", widget.DefaultPopoverSettings(),
			func(trigger *dom.Element, s widget.TooltipSettings) (widget.Widget, error) {
				return widget.NewPopover(trigger, s)
			})
	})
}

// options reads an optional script options object.
type options struct {
	b   *DOMBinder
	obj *goja.Object
}

func (b *DOMBinder) options(v goja.Value) options {
	obj, _ := v.(*goja.Object)
	return options{b: b, obj: obj}
}

func (o options) get(key string) (goja.Value, bool) {
	if o.obj == nil {
		return nil, false
	}
	v := o.obj.Get(key)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, false
	}
	return v, true
}

func (o options) element(key string) *dom.Element {
	if v, ok := o.get(key); ok {
		return o.b.elementOf(v)
	}
	return nil
}

func (o options) placement(fallback popper.Placement) popper.Placement {
	v, ok := o.get("placement")
	if !ok {
		return fallback
	}
	p, ok := popper.ParsePlacement(v.String())
	if !ok {
		panic(o.b.runtime.vm.NewTypeError(fmt.Sprintf("invalid placement %q", v.String())))
	}
	return p
}

func (o options) position(fallback popper.Position) popper.Position {
	v, ok := o.get("position")
	if !ok {
		return fallback
	}
	p, ok := popper.ParsePosition(v.String())
	if !ok {
		panic(o.b.runtime.vm.NewTypeError(fmt.Sprintf("invalid position %q", v.String())))
	}
	return p
}

func (o options) number(key string, fallback float64) float64 {
	if v, ok := o.get(key); ok {
		return v.ToFloat()
	}
	return fallback
}

func (o options) flag(key string, fallback bool) bool {
	if v, ok := o.get(key); ok {
		return v.ToBoolean()
	}
	return fallback
}

func (o options) minContact(fallback *float64) *float64 {
	if v, ok := o.get("minContact"); ok {
		return popper.MinContact(v.ToFloat())
	}
	return fallback
}

func (o options) text(key, fallback string) string {
	if v, ok := o.get(key); ok {
		return v.String()
	}
	return fallback
}

// newPopper implements new Popper(node, options).
func (b *DOMBinder) newPopper(call goja.ConstructorCall) *goja.Object {
	vm := b.runtime.vm
	node := b.elementOf(call.Argument(0))
	opts := b.options(call.Argument(1))
	this := call.This

	s := popper.DefaultSettings()
	s.Reference = opts.element("reference")
	s.Container = opts.element("container")
	s.Arrow = opts.element("arrow")
	s.Placement = opts.placement(s.Placement)
	s.Position = opts.position(s.Position)
	s.Spacing = opts.number("spacing", s.Spacing)
	s.MinContact = opts.minContact(s.MinContact)
	s.Fixed = opts.flag("fixed", s.Fixed)
	s.UseGPU = opts.flag("useGPU", s.UseGPU)
	if v, ok := opts.get("onUpdate"); ok {
		if fn, ok := goja.AssertFunction(v); ok {
			s.AfterUpdate = func(*popper.Positioner) {
				b.runtime.call(fn, this, this)
			}
		}
	}

	p, err := popper.New(node, s)
	if err != nil {
		panic(vm.NewTypeError(err.Error()))
	}

	this.Set("update", func(goja.FunctionCall) goja.Value {
		p.Update()
		return goja.Undefined()
	})
	this.Set("dispose", func(goja.FunctionCall) goja.Value {
		p.Dispose()
		return goja.Undefined()
	})
	this.DefineAccessorProperty("placement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(string(p.Placement()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	this.DefineAccessorProperty("offset", vm.ToValue(func(goja.FunctionCall) goja.Value {
		offset := vm.NewObject()
		offset.Set("x", p.Offset().X)
		offset.Set("y", p.Offset().Y)
		return offset
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	this.DefineAccessorProperty("disposed", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(p.IsDisposed())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	return this
}

// newWidget implements the Tooltip and Popover constructors. Options
// given in script override the trigger's data-ui-* attributes.
func (b *DOMBinder) newWidget(call goja.ConstructorCall, name string, base widget.TooltipSettings,
	create func(*dom.Element, widget.TooltipSettings) (widget.Widget, error)) *goja.Object {

	vm := b.runtime.vm
	trigger := b.elementOf(call.Argument(0))
	if trigger == nil {
		panic(vm.NewTypeError(name + ": trigger is not an element"))
	}
	s, err := widget.TooltipSettingsFromDataset(trigger, base)
	if err != nil {
		panic(vm.NewTypeError(err.Error()))
	}
	opts := b.options(call.Argument(1))
	s.Title = opts.text("title", s.Title)
	s.Content = opts.text("content", s.Content)
	s.Placement = opts.placement(s.Placement)
	s.Position = opts.position(s.Position)
	s.Spacing = opts.number("spacing", s.Spacing)
	s.MinContact = opts.minContact(s.MinContact)
	s.Fixed = opts.flag("fixed", s.Fixed)
	s.UseGPU = opts.flag("useGPU", s.UseGPU)
	if el := opts.element("container"); el != nil {
		s.Container = el
	}
	if el := opts.element("boundary"); el != nil {
		s.Boundary = el
	}

	w, err := create(trigger, s)
	if err != nil {
		panic(vm.NewTypeError(err.Error()))
	}

	this := call.This
	this.Set("show", func(goja.FunctionCall) goja.Value {
		if err := w.Show(); err != nil {
			b.throwError(err)
		}
		return goja.Undefined()
	})
	this.Set("hide", func(goja.FunctionCall) goja.Value {
		w.Hide()
		return goja.Undefined()
	})
	this.Set("toggle", func(goja.FunctionCall) goja.Value {
		if err := w.Toggle(); err != nil {
			b.throwError(err)
		}
		return goja.Undefined()
	})
	this.Set("refresh", func(goja.FunctionCall) goja.Value {
		w.Refresh()
		return goja.Undefined()
	})
	this.Set("dispose", func(goja.FunctionCall) goja.Value {
		w.Dispose()
		return goja.Undefined()
	})
	this.DefineAccessorProperty("isShown", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(w.IsShown())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	this.DefineAccessorProperty("element", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.elementValue(w.Element())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	this.DefineAccessorProperty("placement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		if p := w.Positioner(); p != nil {
			return vm.ToValue(string(p.Placement()))
		}
		return goja.Null()
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	return this
}
