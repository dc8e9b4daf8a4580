package js

import (
	"errors"
	"strings"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/dop251/goja"
)

// DOMBinder wraps DOM objects as script objects. The same Go element
// always maps to the same script object.
type DOMBinder struct {
	runtime  *Runtime
	nodeMap  map[*dom.Element]*goja.Object
	docMap   map[*dom.Document]*goja.Object
	listener *listenerRegistry
}

// NewDOMBinder creates a DOM binder for the given runtime.
func NewDOMBinder(runtime *Runtime) *DOMBinder {
	return &DOMBinder{
		runtime:  runtime,
		nodeMap:  make(map[*dom.Element]*goja.Object),
		docMap:   make(map[*dom.Document]*goja.Object),
		listener: newListenerRegistry(),
	}
}

// Bind makes win the script's window: the global object gains window
// properties, document follows win's current document, and
// requestAnimationFrame schedules on win. The Popper, Tooltip and Popover
// constructors are installed as well.
func (r *Runtime) Bind(win *dom.Window) {
	r.window = win
	r.binder = NewDOMBinder(r)
	r.binder.bindWindow(win)
	r.setupToolkit()
	tracer().Debugf("runtime bound to window %gx%g", win.InnerWidth(), win.InnerHeight())
}

// Binder returns the DOM binder, or nil before Bind.
func (r *Runtime) Binder() *DOMBinder {
	return r.binder
}

// bindWindow installs window members on the global object.
func (b *DOMBinder) bindWindow(win *dom.Window) {
	vm := b.runtime.vm
	global := vm.GlobalObject()
	global.Set("window", global)

	getter := func(fn func() interface{}) goja.Value {
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return vm.ToValue(fn())
		})
	}
	accessor := func(name string, fn func() interface{}) {
		global.DefineAccessorProperty(name, getter(fn), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	accessor("document", func() interface{} { return b.BindDocument(win.Document()) })
	accessor("innerWidth", func() interface{} { return win.InnerWidth() })
	accessor("innerHeight", func() interface{} { return win.InnerHeight() })
	accessor("scrollX", func() interface{} { return win.ScrollX() })
	accessor("scrollY", func() interface{} { return win.ScrollY() })
	accessor("pageXOffset", func() interface{} { return win.ScrollX() })
	accessor("pageYOffset", func() interface{} { return win.ScrollY() })

	global.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		win.ScrollTo(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return goja.Undefined()
	})
	global.Set("resizeTo", func(call goja.FunctionCall) goja.Value {
		win.ResizeTo(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return goja.Undefined()
	})
	global.Set("getComputedStyle", func(call goja.FunctionCall) goja.Value {
		el := b.elementOf(call.Argument(0))
		if el == nil {
			panic(vm.NewTypeError("getComputedStyle: argument is not an element"))
		}
		style := vm.NewObject()
		style.Set("getPropertyValue", func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(el.ComputedStyle(call.Argument(0).String()))
		})
		return style
	})
	global.Set("requestAnimationFrame", func(call goja.FunctionCall) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("requestAnimationFrame: callback is not a function"))
		}
		id := win.RequestAnimationFrame(func(ts float64) {
			b.runtime.call(callback, goja.Undefined(), vm.ToValue(ts))
		})
		return vm.ToValue(id)
	})
	global.Set("cancelAnimationFrame", func(call goja.FunctionCall) goja.Value {
		win.CancelAnimationFrame(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	})
	b.bindEventTarget(global, win)
}

// BindDocument creates a script object for doc.
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	if doc == nil {
		return nil
	}
	if obj, ok := b.docMap[doc]; ok {
		return obj
	}
	vm := b.runtime.vm
	jsDoc := vm.NewObject()
	jsDoc.Set("_goDoc", doc)
	jsDoc.Set("nodeType", int(dom.DocumentNode))

	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.elementValue(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return b.elementValue(doc.DocumentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.elementValue(doc.GetElementById(call.Argument(0).String()))
	})
	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if name == "" {
			b.throwDOMError(dom.ErrSyntax("the tag name provided is empty"))
		}
		return b.BindElement(doc.CreateElement(name))
	})
	b.docMap[doc] = jsDoc
	return jsDoc
}

// BindElement creates a script object for el.
func (b *DOMBinder) BindElement(el *dom.Element) *goja.Object {
	if el == nil {
		return nil
	}
	if obj, ok := b.nodeMap[el]; ok {
		return obj
	}

	vm := b.runtime.vm
	jsEl := vm.NewObject()
	jsEl.Set("_goElement", el)
	jsEl.Set("nodeType", int(dom.ElementNode))

	readOnly := func(name string, fn func() goja.Value) {
		jsEl.DefineAccessorProperty(name, vm.ToValue(func(goja.FunctionCall) goja.Value {
			return fn()
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	readWrite := func(name string, get func() goja.Value, set func(goja.Value)) {
		jsEl.DefineAccessorProperty(name, vm.ToValue(func(goja.FunctionCall) goja.Value {
			return get()
		}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0))
			return goja.Undefined()
		}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	number := func(fn func() float64) func() goja.Value {
		return func() goja.Value { return vm.ToValue(fn()) }
	}

	readOnly("tagName", func() goja.Value { return vm.ToValue(el.TagName()) })
	readOnly("localName", func() goja.Value { return vm.ToValue(el.LocalName()) })
	readOnly("isConnected", func() goja.Value { return vm.ToValue(el.IsConnected()) })
	readOnly("parentElement", func() goja.Value { return b.elementValue(el.ParentElement()) })
	readOnly("offsetParent", func() goja.Value { return b.elementValue(el.OffsetParent()) })
	readOnly("offsetWidth", number(el.OffsetWidth))
	readOnly("offsetHeight", number(el.OffsetHeight))
	readOnly("clientWidth", number(el.ClientWidth))
	readOnly("clientHeight", number(el.ClientHeight))
	readOnly("scrollWidth", number(el.ScrollWidth))
	readOnly("scrollHeight", number(el.ScrollHeight))
	readOnly("style", func() goja.Value { return b.bindStyle(el) })
	readOnly("dataset", func() goja.Value { return b.bindDataset(el) })
	readOnly("classList", func() goja.Value { return b.bindClassList(el) })
	readOnly("children", func() goja.Value {
		children := el.Children()
		out := make([]interface{}, len(children))
		for i, c := range children {
			out[i] = b.BindElement(c)
		}
		return vm.NewArray(out...)
	})

	readWrite("id",
		func() goja.Value { return vm.ToValue(el.Id()) },
		func(v goja.Value) { el.SetId(v.String()) })
	readWrite("className",
		func() goja.Value { return vm.ToValue(el.GetAttribute("class")) },
		func(v goja.Value) { el.SetAttribute("class", v.String()) })
	readWrite("textContent",
		func() goja.Value { return vm.ToValue(el.TextContent()) },
		func(v goja.Value) { el.SetTextContent(v.String()) })
	readWrite("scrollTop",
		number(el.ScrollTop),
		func(v goja.Value) { el.ScrollTo(el.ScrollLeft(), v.ToFloat()) })
	readWrite("scrollLeft",
		number(el.ScrollLeft),
		func(v goja.Value) { el.ScrollTo(v.ToFloat(), el.ScrollTop()) })

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})
	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		el.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})
	jsEl.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := b.elementOf(call.Argument(0))
		if child == nil {
			panic(vm.NewTypeError("appendChild: argument is not an element"))
		}
		if _, err := el.AppendChild(child.AsNode()); err != nil {
			b.throwError(err)
		}
		return call.Argument(0)
	})
	jsEl.Set("remove", func(call goja.FunctionCall) goja.Value {
		el.Remove()
		return goja.Undefined()
	})
	jsEl.Set("getBoundingClientRect", func(call goja.FunctionCall) goja.Value {
		return b.bindRect(el.GetBoundingClientRect())
	})
	jsEl.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		el.ScrollTo(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return goja.Undefined()
	})
	b.bindEventTarget(jsEl, el)

	b.nodeMap[el] = jsEl
	return jsEl
}

// elementValue binds el, mapping nil to null.
func (b *DOMBinder) elementValue(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.BindElement(el)
}

// elementOf extracts the Go element from a script value, or nil.
func (b *DOMBinder) elementOf(v goja.Value) *dom.Element {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil {
		return nil
	}
	if goEl := obj.Get("_goElement"); goEl != nil && !goja.IsUndefined(goEl) {
		if el, ok := goEl.Export().(*dom.Element); ok {
			return el
		}
	}
	return nil
}

// bindStyle returns the inline style object of el.
func (b *DOMBinder) bindStyle(el *dom.Element) *goja.Object {
	vm := b.runtime.vm
	sd := el.Style()
	style := vm.NewObject()
	style.Set("getPropertyValue", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(sd.GetPropertyValue(call.Argument(0).String()))
	})
	style.Set("setProperty", func(call goja.FunctionCall) goja.Value {
		value := call.Argument(1)
		if goja.IsUndefined(value) || goja.IsNull(value) {
			sd.RemoveProperty(call.Argument(0).String())
			return goja.Undefined()
		}
		sd.SetProperty(call.Argument(0).String(), value.String(), call.Argument(2).String())
		return goja.Undefined()
	})
	style.Set("removeProperty", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(sd.RemoveProperty(call.Argument(0).String()))
	})
	style.DefineAccessorProperty("cssText", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(sd.CSSText())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		sd.SetCSSText(call.Argument(0).String())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	return style
}

// bindDataset returns a snapshot of el's data-* attributes keyed in
// camelCase.
func (b *DOMBinder) bindDataset(el *dom.Element) *goja.Object {
	dataset := b.runtime.vm.NewObject()
	for _, attr := range el.Attributes() {
		if key, ok := datasetKey(attr.Name); ok {
			dataset.Set(key, attr.Value)
		}
	}
	return dataset
}

// datasetKey converts data-ui-placement to uiPlacement.
func datasetKey(attr string) (string, bool) {
	name, ok := strings.CutPrefix(attr, "data-")
	if !ok || name == "" {
		return "", false
	}
	var sb strings.Builder
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		sb.WriteRune(r)
	}
	return sb.String(), true
}

func (b *DOMBinder) bindClassList(el *dom.Element) *goja.Object {
	vm := b.runtime.vm
	cl := el.ClassList()
	list := vm.NewObject()
	tokens := func(call goja.FunctionCall) []string {
		out := make([]string, len(call.Arguments))
		for i, a := range call.Arguments {
			out[i] = a.String()
		}
		return out
	}
	list.Set("add", func(call goja.FunctionCall) goja.Value {
		if err := cl.Add(tokens(call)...); err != nil {
			b.throwError(err)
		}
		return goja.Undefined()
	})
	list.Set("remove", func(call goja.FunctionCall) goja.Value {
		if err := cl.Remove(tokens(call)...); err != nil {
			b.throwError(err)
		}
		return goja.Undefined()
	})
	list.Set("contains", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(cl.Contains(call.Argument(0).String()))
	})
	list.DefineAccessorProperty("length", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(len(cl.Values()))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	return list
}

func (b *DOMBinder) bindRect(r *dom.DOMRect) *goja.Object {
	vm := b.runtime.vm
	rect := vm.NewObject()
	rect.Set("x", r.X)
	rect.Set("y", r.Y)
	rect.Set("width", r.Width)
	rect.Set("height", r.Height)
	rect.Set("top", r.Top())
	rect.Set("right", r.Right())
	rect.Set("bottom", r.Bottom())
	rect.Set("left", r.Left())
	return rect
}

// throwError throws err as a script exception. DOM errors keep their name.
func (b *DOMBinder) throwError(err error) {
	var domErr *dom.DOMError
	if errors.As(err, &domErr) {
		b.throwDOMError(domErr)
	}
	panic(b.runtime.vm.NewGoError(err))
}

// throwDOMError throws an Error object named after the DOM exception.
func (b *DOMBinder) throwDOMError(err *dom.DOMError) {
	vm := b.runtime.vm
	exc := vm.NewGoError(err)
	exc.Set("name", err.Name)
	exc.Set("message", err.Message)
	panic(exc)
}
