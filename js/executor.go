package js

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrisuehlinger/vibeui/dom"
)

// ScriptLoader fetches the source of an external script.
type ScriptLoader func(ctx context.Context, src string) (string, error)

// SetScriptLoader sets how scripts with a src attribute are fetched.
// Without a loader they are skipped.
func (r *Runtime) SetScriptLoader(load ScriptLoader) {
	r.loadScript = load
}

// ExecuteScripts runs the script elements of the bound window's document
// in document order, then dispatches "load" on the window. A failing
// script does not stop the following ones; all errors are returned.
func (r *Runtime) ExecuteScripts() []error {
	return r.ExecuteScriptsContext(context.Background())
}

// ExecuteScriptsContext is ExecuteScripts with a context for fetching
// external scripts.
func (r *Runtime) ExecuteScriptsContext(ctx context.Context) []error {
	if r.window == nil {
		return []error{fmt.Errorf("execute scripts: runtime has no window")}
	}
	doc := r.window.Document()
	scripts := doc.QueryAllFunc(func(el *dom.Element) bool {
		return el.LocalName() == "script"
	})

	var errs []error
	for i, script := range scripts {
		if err := r.executeScript(ctx, script, i); err != nil {
			errs = append(errs, err)
		}
	}
	r.window.DispatchEvent(dom.NewEvent("load"))
	return errs
}

// executeScript runs one script element. Non-JavaScript scripts are
// skipped.
func (r *Runtime) executeScript(ctx context.Context, script *dom.Element, index int) error {
	switch strings.ToLower(strings.TrimSpace(script.GetAttribute("type"))) {
	case "", "text/javascript", "application/javascript":
	default:
		return nil
	}
	if script.HasAttribute("src") {
		src := script.GetAttribute("src")
		if r.loadScript == nil {
			tracer().Infof("skipping external script %q", src)
			return nil
		}
		code, err := r.loadScript(ctx, src)
		if err != nil {
			return fmt.Errorf("loading script %q: %w", src, err)
		}
		return r.ExecuteScript(code, src)
	}
	code := strings.TrimSpace(script.TextContent())
	if code == "" {
		return nil
	}
	name := script.Id()
	if name == "" {
		name = fmt.Sprintf("inline-%d", index)
	}
	return r.ExecuteScript(code, name)
}
