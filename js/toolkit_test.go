package js

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const popperPage = `<html><body style="margin: 0">
	<div id="ref" style="margin-left: 50px; width: 100px; height: 20px"></div>
	<div id="pop" style="width: 40px; height: 30px"></div>
</body></html>`

func TestScriptPopper(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vibeui.js")
	defer teardown()

	r, win := newBoundRuntime(t, popperPage)

	got := mustExecute(t, r, `
		var updates = 0;
		var p = new Popper(document.getElementById('pop'), {
			reference: document.getElementById('ref'),
			placement: 'bottom',
			onUpdate: function() { updates++; }
		});
		[p.placement, p.offset.x, p.offset.y, updates].join(',')
	`)
	if got != "bottom,80,25,1" {
		t.Errorf("Expected 'bottom,80,25,1', got %s", got)
	}

	pop := win.Document().GetElementById("pop")
	if tf := pop.Style().GetPropertyValue("transform"); tf != "translate3d(80px, 25px, 0)" {
		t.Errorf("Expected translate3d(80px, 25px, 0), got %q", tf)
	}

	if got := mustExecute(t, r, "p.update(); updates"); got != "2" {
		t.Errorf("Expected 2 updates, got %s", got)
	}

	mustExecute(t, r, "p.dispose()")
	if got := mustExecute(t, r, "p.disposed"); got != "true" {
		t.Errorf("Expected disposed, got %s", got)
	}
	if tf := pop.Style().GetPropertyValue("transform"); tf != "" {
		t.Errorf("Expected dispose to clear the transform, got %q", tf)
	}
	if len(r.Errors()) != 0 {
		t.Errorf("Expected no script errors, got %v", r.Errors())
	}
}

func TestScriptPopperErrors(t *testing.T) {
	r, _ := newBoundRuntime(t, popperPage)

	tests := []struct {
		name string
		code string
	}{
		{"missing node", "new Popper(null, {reference: document.getElementById('ref')})"},
		{"missing reference", "new Popper(document.getElementById('pop'), {})"},
		{"invalid placement", "new Popper(document.getElementById('pop'), {reference: document.getElementById('ref'), placement: 'up'})"},
		{"invalid position", "new Popper(document.getElementById('pop'), {reference: document.getElementById('ref'), position: 'middle'})"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustExecute(t, r, "var kind = ''; try { "+tt.code+"; } catch (e) { kind = e instanceof TypeError ? 'TypeError' : String(e); } kind")
			if got != "TypeError" {
				t.Errorf("Expected TypeError, got %q", got)
			}
		})
	}
}

const widgetPage = `<html><body style="margin: 0">
	<div id="trigger" title="Hello" style="margin-top: 100px; margin-left: 200px; width: 100px; height: 20px"></div>
</body></html>`

func TestScriptTooltip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vibeui.js")
	defer teardown()

	r, win := newBoundRuntime(t, widgetPage)

	got := mustExecute(t, r, `
		var tip = new Tooltip(document.getElementById('trigger'));
		var before = tip.isShown + ',' + tip.placement + ',' + tip.element;
		tip.show();
		before + ';' + [tip.isShown, tip.placement, tip.element.style.getPropertyValue('transform')].join(',')
	`)
	if got != "false,null,null;true,top,translate3d(222px, 74px, 0)" {
		t.Errorf("Unexpected tooltip state %q", got)
	}
	if n := len(win.Document().Body().Children()); n != 2 {
		t.Errorf("Expected the tooltip to be appended to body, got %d children", n)
	}

	mustExecute(t, r, "tip.toggle()")
	if n := len(win.Document().Body().Children()); n != 1 {
		t.Errorf("Expected toggle to hide the tooltip, got %d children", n)
	}

	mustExecute(t, r, "tip.dispose()")
	if _, err := r.Execute("tip.show()"); err == nil {
		t.Error("Expected show after dispose to throw")
	}
}

func TestScriptPopover(t *testing.T) {
	r, _ := newBoundRuntime(t, widgetPage)

	got := mustExecute(t, r, `
		var pop = new Popover(document.getElementById('trigger'), {title: 'T', content: 'Body', placement: 'bottom'});
		pop.show();
		var el = pop.element;
		[pop.placement, el.children.length, el.classList.contains('popover')].join(',')
	`)
	if got != "bottom,3,true" {
		t.Errorf("Expected 'bottom,3,true', got %q", got)
	}

	_, err := r.Execute("new Popover(document.getElementById('trigger'), {placement: 'diagonal'})")
	if err == nil || !strings.Contains(err.Error(), "diagonal") {
		t.Errorf("Expected an invalid placement error, got %v", err)
	}
	if _, err := r.Execute("new Tooltip(null)"); err == nil {
		t.Error("Expected a missing trigger to throw")
	}
}

func TestExecuteScripts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vibeui.js")
	defer teardown()

	r, _ := newBoundRuntime(t, `<html><body>
		<div id="out"></div>
		<script id="first">var trace = ['first']; window.addEventListener('load', function() { trace.push('load'); });</script>
		<script type="text/template">trace.push('template');</script>
		<script src="remote.js"></script>
		<script>trace.push(</script>
		<script>trace.push('last'); document.getElementById('out').textContent = trace.join(',');</script>
	</body></html>`)

	errs := r.ExecuteScripts()
	if len(errs) != 1 {
		t.Fatalf("Expected one script error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "inline-3") {
		t.Errorf("Expected the failing script to be named inline-3, got %v", errs[0])
	}
	if got := mustExecute(t, r, "trace.join(',')"); got != "first,last,load" {
		t.Errorf("Expected 'first,last,load', got %s", got)
	}
	if got := mustExecute(t, r, "document.getElementById('out').textContent"); got != "first,last" {
		t.Errorf("Expected 'first,last', got %s", got)
	}

	if errs := NewRuntime().ExecuteScripts(); len(errs) != 1 {
		t.Errorf("Expected an error without a window, got %v", errs)
	}
}

func TestExecuteExternalScripts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vibeui.js")
	defer teardown()

	r, _ := newBoundRuntime(t, `<html><body>
		<script>var trace = ['inline'];</script>
		<script src="lib.js"></script>
		<script src="missing.js"></script>
		<script>trace.push('after');</script>
	</body></html>`)

	sources := map[string]string{"lib.js": "trace.push('lib');"}
	var requested []string
	r.SetScriptLoader(func(ctx context.Context, src string) (string, error) {
		requested = append(requested, src)
		code, ok := sources[src]
		if !ok {
			return "", errors.New("not found")
		}
		return code, nil
	})

	errs := r.ExecuteScripts()
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "missing.js") {
		t.Fatalf("Expected one error for missing.js, got %v", errs)
	}
	if len(requested) != 2 {
		t.Errorf("Expected two fetches, got %v", requested)
	}
	if got := mustExecute(t, r, "trace.join(',')"); got != "inline,lib,after" {
		t.Errorf("Expected 'inline,lib,after', got %s", got)
	}
}
