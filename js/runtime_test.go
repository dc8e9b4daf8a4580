package js

import (
	"strings"
	"testing"
	"time"

	"github.com/chrisuehlinger/vibeui/dom"
)

// fakeClock replaces the runtime's timer clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func withFakeClock(r *Runtime) *fakeClock {
	c := &fakeClock{now: time.Unix(0, 0)}
	r.timers.now = func() time.Time { return c.now }
	return c
}

func TestRuntimeBasic(t *testing.T) {
	r := NewRuntime()

	result, err := r.Execute("1 + 2")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 3 {
		t.Errorf("Expected 3, got %v", result.ToInteger())
	}
}

func TestRuntimeFunctions(t *testing.T) {
	r := NewRuntime()

	_, err := r.Execute(`
		var x = 42;
		function add(a, b) {
			return a + b;
		}
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	result, err := r.Execute("add(x, 4)")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ToInteger() != 46 {
		t.Errorf("Expected 46, got %v", result.ToInteger())
	}
}

func TestRuntimeConsole(t *testing.T) {
	r := NewRuntime()

	_, err := r.Execute(`
		console.log("test", 1, null);
		console.warn("warning");
		console.error("error");
		console.assert(1 === 2, "math");
		console.count();
		console.count();
	`)
	if err != nil {
		t.Fatalf("console methods failed: %v", err)
	}

	want := []string{
		"test 1 null",
		"[WARN] warning",
		"[ERROR] error",
		"[ERROR] Assertion failed: math",
		"default: 1",
		"default: 2",
	}
	logs := r.Logs()
	if len(logs) != len(want) {
		t.Fatalf("Expected %d log entries, got %v", len(want), logs)
	}
	for i := range want {
		if logs[i] != want[i] {
			t.Errorf("Log %d: expected %q, got %q", i, want[i], logs[i])
		}
	}
}

func TestRuntimeSetTimeout(t *testing.T) {
	r := NewRuntime()
	clock := withFakeClock(r)

	_, err := r.Execute(`
		var order = [];
		setTimeout(function(tag) { order.push(tag); }, 20, "late");
		setTimeout(function() { order.push("early"); }, 10);
		var cancelled = setTimeout(function() { order.push("cancelled"); }, 10);
		clearTimeout(cancelled);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	r.ProcessTimers()
	clock.advance(25 * time.Millisecond)
	r.ProcessTimers()

	result, _ := r.Execute("order.join(',')")
	if result.String() != "early,late" {
		t.Errorf("Expected 'early,late', got %v", result.String())
	}
	if r.HasPendingWork() {
		t.Error("Expected no pending work after the timers fired")
	}
}

func TestRuntimeSetInterval(t *testing.T) {
	r := NewRuntime()
	clock := withFakeClock(r)

	_, err := r.Execute(`
		var count = 0;
		var id = setInterval(function() { count++; }, 10);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		clock.advance(10 * time.Millisecond)
		r.ProcessTimers()
	}
	_, _ = r.Execute("clearInterval(id)")
	clock.advance(10 * time.Millisecond)
	r.ProcessTimers()

	result, _ := r.Execute("count")
	if result.ToInteger() != 3 {
		t.Errorf("Expected count 3, got %v", result.ToInteger())
	}
}

func TestRuntimePerformance(t *testing.T) {
	r := NewRuntime()

	result, err := r.Execute("performance.now()")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	now := result.ToFloat()
	if now < 0 {
		t.Errorf("Expected performance.now() >= 0, got %v", now)
	}

	time.Sleep(5 * time.Millisecond)
	result, _ = r.Execute("performance.now()")
	if later := result.ToFloat(); later <= now {
		t.Errorf("Expected performance.now() to increase, got %v then %v", now, later)
	}
}

func TestRuntimeErrorHandling(t *testing.T) {
	r := NewRuntime()
	var reported []error
	r.SetOnError(func(err error) { reported = append(reported, err) })

	_, err := r.Execute("this is not valid javascript")
	if err == nil {
		t.Error("Expected error for invalid JavaScript")
	}
	if len(r.Errors()) != 1 || len(reported) != 1 {
		t.Errorf("Expected the error to be recorded and reported, got %d/%d", len(r.Errors()), len(reported))
	}

	err = r.ExecuteScript("throw new Error('boom')", "boom.js")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected thrown error, got %v", err)
	}

	r.ClearErrors()
	if len(r.Errors()) != 0 {
		t.Errorf("Expected errors to be cleared, got %d", len(r.Errors()))
	}
}

func TestRuntimeCallbackErrors(t *testing.T) {
	r := NewRuntime()

	_, err := r.Execute(`
		var after = false;
		queueMicrotask(function() { throw new Error("in microtask"); });
		queueMicrotask(function() { after = true; });
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	r.RunEventLoop()

	if len(r.Errors()) != 1 {
		t.Errorf("Expected one recorded callback error, got %v", r.Errors())
	}
	result, _ := r.Execute("after")
	if !result.ToBoolean() {
		t.Error("Expected later microtasks to run after a failing one")
	}
}

func TestRuntimeGlobalThis(t *testing.T) {
	r := NewRuntime()

	result, _ := r.Execute("typeof window")
	if result.String() != "undefined" {
		t.Errorf("Expected no window before Bind, got %v", result.String())
	}

	r.Bind(dom.NewWindow(800, 600))
	result, err := r.Execute("globalThis === window && self === window")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.ToBoolean() {
		t.Error("Expected globalThis === self === window")
	}
}

func TestRuntimeQueueMicrotask(t *testing.T) {
	r := NewRuntime()

	_, err := r.Execute(`
		var order = [];
		queueMicrotask(function() {
			order.push(1);
			queueMicrotask(function() { order.push(2); });
		});
		order.push(0);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	r.RunEventLoop()

	result, _ := r.Execute("order.join(',')")
	if result.String() != "0,1,2" {
		t.Errorf("Expected '0,1,2', got %v", result.String())
	}
}

func TestRuntimeRequestAnimationFrame(t *testing.T) {
	r := NewRuntime()
	win := dom.NewWindow(800, 600)
	r.Bind(win)

	_, err := r.Execute(`
		var frames = [];
		requestAnimationFrame(function(ts) {
			frames.push(typeof ts);
			requestAnimationFrame(function() { frames.push("next"); });
		});
		var dropped = requestAnimationFrame(function() { frames.push("dropped"); });
		cancelAnimationFrame(dropped);
	`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if win.PendingFrames() != 1 || !r.HasPendingWork() {
		t.Fatalf("Expected one pending frame, got %d", win.PendingFrames())
	}

	if !r.RunEventLoop() {
		t.Error("Expected the nested frame to keep the loop busy")
	}
	r.RunEventLoop()

	result, _ := r.Execute("frames.join(',')")
	if result.String() != "number,next" {
		t.Errorf("Expected 'number,next', got %v", result.String())
	}
	if r.HasPendingWork() {
		t.Error("Expected no pending work")
	}
}

func TestRuntimePanicRecovery(t *testing.T) {
	r := NewRuntime()

	code := `var x = "\u{10ffff}";` // may panic in some goja versions
	if err := r.ExecuteScript(code, "test.js"); err != nil {
		t.Logf("Got error (expected for unicode escape): %v", err)
	}

	result, err := r.Execute("1 + 1")
	if err != nil {
		t.Errorf("Runtime should still work after panic recovery: %v", err)
	}
	if result.ToInteger() != 2 {
		t.Errorf("Expected 2, got %v", result.ToInteger())
	}
}
