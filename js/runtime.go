// Package js exposes documents, windows and the positioning toolkit to
// scripts. It uses the goja JavaScript engine (pure Go ES5.1+ implementation).
package js

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/dop251/goja"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vibeui.js'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.js")
}

// Runtime wraps a goja JavaScript runtime with browser-like globals.
type Runtime struct {
	vm        *goja.Runtime
	window    *dom.Window
	binder    *DOMBinder
	timers    *timerManager
	eventLoop *eventLoop
	start     time.Time
	mu        sync.Mutex

	loadScript ScriptLoader

	errMu   sync.Mutex
	errors  []error
	logs    []string
	onError func(error)
}

// NewRuntime creates a runtime with console, timers, performance and
// queueMicrotask. Bind adds a document and window.
func NewRuntime() *Runtime {
	r := &Runtime{
		vm:        goja.New(),
		timers:    newTimerManager(),
		eventLoop: newEventLoop(),
		start:     time.Now(),
	}
	r.setupConsole()
	r.setupTimers()
	r.setupGlobals()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Window returns the bound window, or nil.
func (r *Runtime) Window() *dom.Window {
	return r.window
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// goja panics on some malformed input instead of returning an error
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.reportError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.reportError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs code named src, e.g. the contents of a
// script element. Errors are collected and returned.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.reportError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		err = fmt.Errorf("compile %s: %w", src, err)
		r.reportError(err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.reportError(err)
	}
	return err
}

// call invokes a script callback from Go, recording a thrown exception
// instead of propagating it.
func (r *Runtime) call(fn goja.Callable, this goja.Value, args ...goja.Value) {
	if _, err := fn(this, args...); err != nil {
		r.reportError(err)
	}
}

func (r *Runtime) reportError(err error) {
	tracer().Errorf("script error: %v", err)
	r.errMu.Lock()
	r.errors = append(r.errors, err)
	handler := r.onError
	r.errMu.Unlock()
	if handler != nil {
		handler(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	r.errors = r.errors[:0]
}

// Logs returns the console output collected so far, one entry per call.
func (r *Runtime) Logs() []string {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	return append([]string{}, r.logs...)
}

// now returns milliseconds since the runtime was created.
func (r *Runtime) now() float64 {
	return float64(time.Since(r.start).Nanoseconds()) / 1e6
}

// RunEventLoop processes microtasks, due timers and, with a bound window,
// one batch of animation frames. It returns true if more work is pending.
func (r *Runtime) RunEventLoop() bool {
	return r.eventLoop.runOnce(r)
}

// ProcessTimers checks and executes any due timers.
func (r *Runtime) ProcessTimers() {
	r.timers.process(r)
}

// HasPendingWork returns true if there are timers, tasks or animation
// frames waiting.
func (r *Runtime) HasPendingWork() bool {
	if r.timers.hasPending() || r.eventLoop.hasPending() {
		return true
	}
	return r.window != nil && r.window.PendingFrames() > 0
}

// setupConsole creates the console object. Output is traced and collected.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	for _, level := range []string{"log", "info", "debug", "warn", "error"} {
		level := level
		console.Set(level, func(call goja.FunctionCall) goja.Value {
			r.log(level, formatArgs(call.Arguments))
			return goja.Undefined()
		})
	}

	console.Set("assert", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 || !call.Arguments[0].ToBoolean() {
			msg := "Assertion failed"
			if len(call.Arguments) > 1 {
				msg += ": " + formatArgs(call.Arguments[1:])
			}
			r.log("error", msg)
		}
		return goja.Undefined()
	})

	counts := make(map[string]int)
	console.Set("count", func(call goja.FunctionCall) goja.Value {
		label := "default"
		if len(call.Arguments) > 0 {
			label = call.Arguments[0].String()
		}
		counts[label]++
		r.log("log", fmt.Sprintf("%s: %d", label, counts[label]))
		return goja.Undefined()
	})

	r.vm.Set("console", console)
}

func (r *Runtime) log(level, msg string) {
	switch level {
	case "error", "warn":
		tracer().Errorf("console.%s: %s", level, msg)
	case "info":
		tracer().Infof("console.%s: %s", level, msg)
	default:
		tracer().Debugf("console.%s: %s", level, msg)
	}
	entry := msg
	if level != "log" {
		entry = "[" + strings.ToUpper(level) + "] " + msg
	}
	r.errMu.Lock()
	r.logs = append(r.logs, entry)
	r.errMu.Unlock()
}

// setupTimers creates setTimeout, setInterval, clearTimeout, clearInterval.
func (r *Runtime) setupTimers() {
	schedule := func(repeat bool) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			callback, ok := goja.AssertFunction(call.Argument(0))
			if !ok {
				return goja.Undefined()
			}
			delay := call.Argument(1).ToInteger()
			if delay < 0 {
				delay = 0
			}
			var args []goja.Value
			if len(call.Arguments) > 2 {
				args = call.Arguments[2:]
			}
			d := time.Duration(delay) * time.Millisecond
			if repeat {
				// intervals never fire more often than every 4ms
				d = max(d, 4*time.Millisecond)
				return r.vm.ToValue(r.timers.setInterval(callback, d, args))
			}
			return r.vm.ToValue(r.timers.setTimeout(callback, d, args))
		}
	}
	cancel := func(call goja.FunctionCall) goja.Value {
		r.timers.clearTimer(int(call.Argument(0).ToInteger()))
		return goja.Undefined()
	}

	r.vm.Set("setTimeout", schedule(false))
	r.vm.Set("setInterval", schedule(true))
	r.vm.Set("clearTimeout", cancel)
	r.vm.Set("clearInterval", cancel)
}

// setupGlobals installs performance and queueMicrotask.
func (r *Runtime) setupGlobals() {
	global := r.vm.GlobalObject()
	r.vm.Set("self", global)
	r.vm.Set("globalThis", global)

	performance := r.vm.NewObject()
	performance.Set("now", func(call goja.FunctionCall) goja.Value {
		return r.vm.ToValue(r.now())
	})
	r.vm.Set("performance", performance)

	r.vm.Set("queueMicrotask", func(call goja.FunctionCall) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(r.vm.NewTypeError("queueMicrotask: argument is not a function"))
		}
		r.eventLoop.queueMicrotask(callback, nil)
		return goja.Undefined()
	})
}

// formatArgs formats function call arguments for console output.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatValue(arg)
	}
	return strings.Join(parts, " ")
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
