// Package ui hosts pages with positioned widgets: a Session loads a page,
// runs its scripts and widgets, and paints it; the Playground shows a
// Session in a fyne window with controls for the positioning settings.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/js"
	"github.com/chrisuehlinger/vibeui/layout"
	"github.com/chrisuehlinger/vibeui/network"
	"github.com/chrisuehlinger/vibeui/popper"
	"github.com/chrisuehlinger/vibeui/render"
	"github.com/chrisuehlinger/vibeui/widget"
)

// tracer traces with key 'vibeui.ui'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.ui")
}

// maxSteps bounds how many event loop iterations Settle runs. Scripts
// with an endless requestAnimationFrame chain never go idle.
const maxSteps = 64

// Session is one loaded page: its window, script runtime and widgets.
type Session struct {
	URL     string
	Window  *dom.Window
	Runtime *js.Runtime
	Widgets []widget.Widget
	// Errors collects script and widget errors from loading.
	Errors []error

	// settings set through Configure, which the triggers' data-ui-*
	// attributes do not reflect
	overrides map[int]widget.TooltipSettings
}

// Open loads ref through loader into a width×height window.
func Open(ctx context.Context, loader *network.Loader, ref string, width, height float64) (*Session, error) {
	res, err := loader.LoadDocument(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !network.IsHTMLContentType(res.ContentType) {
		tracer().Infof("%s is %s, parsing as HTML anyway", res.URL, res.ContentType)
	}
	s, err := openMarkup(ctx, res.String(), width, height, loader.LoadScript)
	if err != nil {
		return nil, err
	}
	s.URL = res.URL
	return s, nil
}

// OpenMarkup loads markup into a width×height window. External scripts
// are fetched with loadScript; nil skips them.
func OpenMarkup(markup string, width, height float64, loadScript js.ScriptLoader) (*Session, error) {
	return openMarkup(context.Background(), markup, width, height, loadScript)
}

func openMarkup(ctx context.Context, markup string, width, height float64, loadScript js.ScriptLoader) (*Session, error) {
	win := dom.NewWindow(width, height)
	doc, err := win.LoadHTML(markup)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	layout.Attach(doc)

	s := &Session{
		Window:    win,
		Runtime:   js.NewRuntime(),
		overrides: make(map[int]widget.TooltipSettings),
	}
	s.Runtime.Bind(win)
	if loadScript != nil {
		s.Runtime.SetScriptLoader(loadScript)
	}
	s.Errors = append(s.Errors, s.Runtime.ExecuteScriptsContext(ctx)...)

	widgets, err := widget.AutoInit(doc)
	if err != nil {
		s.Errors = append(s.Errors, err)
	}
	s.Widgets = widgets
	s.Settle()
	tracer().Infof("session opened: %d widgets, %d errors", len(s.Widgets), len(s.Errors))
	return s, nil
}

// Document returns the session's document.
func (s *Session) Document() *dom.Document {
	return s.Window.Document()
}

// Settle runs the event loop until no work is pending, so that every
// scheduled positioner update has been applied.
func (s *Session) Settle() {
	for i := 0; i < maxSteps; i++ {
		if !s.Runtime.RunEventLoop() {
			return
		}
	}
	tracer().Debugf("session still busy after %d steps", maxSteps)
}

// ErrNoWidget is returned for widget indices out of range.
var ErrNoWidget = errors.New("ui: no such widget")

func (s *Session) widget(i int) (widget.Widget, error) {
	if i < 0 || i >= len(s.Widgets) {
		return nil, fmt.Errorf("%w: %d", ErrNoWidget, i)
	}
	return s.Widgets[i], nil
}

// Toggle shows or hides widget i.
func (s *Session) Toggle(i int) error {
	w, err := s.widget(i)
	if err != nil {
		return err
	}
	if err := w.Toggle(); err != nil {
		return err
	}
	s.Settle()
	return nil
}

// ShowAll shows every widget.
func (s *Session) ShowAll() error {
	var errs []error
	for _, w := range s.Widgets {
		if err := w.Show(); err != nil {
			errs = append(errs, err)
		}
	}
	s.Settle()
	return errors.Join(errs...)
}

// Options are the positioning settings the playground edits.
type Options struct {
	Placement popper.Placement
	Position  popper.Position
	Spacing   float64
	UseGPU    bool
}

// Options returns the settings widget i currently uses.
func (s *Session) Options(i int) (Options, error) {
	w, err := s.widget(i)
	if err != nil {
		return Options{}, err
	}
	ts, err := s.settings(i, w)
	if err != nil {
		return Options{}, err
	}
	return Options{Placement: ts.Placement, Position: ts.Position, Spacing: ts.Spacing, UseGPU: ts.UseGPU}, nil
}

// Configure replaces widget i with one using opts. A shown widget is
// shown again with the new settings.
func (s *Session) Configure(i int, opts Options) error {
	w, err := s.widget(i)
	if err != nil {
		return err
	}
	ts, err := s.settings(i, w)
	if err != nil {
		return err
	}
	ts.Placement, ts.Position = opts.Placement, opts.Position
	ts.Spacing, ts.UseGPU = opts.Spacing, opts.UseGPU

	var next widget.Widget
	switch w.(type) {
	case *widget.Popover:
		next, err = widget.NewPopover(w.Trigger(), ts)
	default:
		next, err = widget.NewTooltip(w.Trigger(), ts)
	}
	if err != nil {
		return err
	}
	shown := w.IsShown()
	w.Dispose()
	s.Widgets[i] = next
	s.overrides[i] = ts
	if shown {
		if err := next.Show(); err != nil {
			return err
		}
	}
	s.Settle()
	return nil
}

func (s *Session) settings(i int, w widget.Widget) (widget.TooltipSettings, error) {
	if ts, ok := s.overrides[i]; ok {
		return ts, nil
	}
	base := widget.DefaultTooltipSettings()
	if _, ok := w.(*widget.Popover); ok {
		base = widget.DefaultPopoverSettings()
	}
	return widget.TooltipSettingsFromDataset(w.Trigger(), base)
}

// ScrollTo scrolls the window and applies the resulting updates.
func (s *Session) ScrollTo(x, y float64) {
	s.Window.ScrollTo(x, y)
	s.Settle()
}

// Resize resizes the window and applies the resulting updates.
func (s *Session) Resize(width, height float64) {
	s.Window.ResizeTo(width, height)
	s.Settle()
}

// Scene builds the paintable scene with every shown widget marked.
func (s *Session) Scene() *render.Scene {
	scene := render.NewScene(s.Window)
	for _, w := range s.Widgets {
		if p := w.Positioner(); p != nil {
			scene.MarkPositioner(p)
		}
	}
	return scene
}

// Paint renders the session.
func (s *Session) Paint() *render.Canvas {
	return render.Paint(s.Scene())
}

// Describe summarizes widget i of s for status lines and headless output.
func Describe(s *Session, i int) string {
	if i < 0 || i >= len(s.Widgets) {
		return fmt.Sprintf("%d widgets", len(s.Widgets))
	}
	w := s.Widgets[i]
	label := render.Label(w.Trigger())
	pos := w.Positioner()
	if pos == nil {
		return label + ": hidden"
	}
	style := pos.Node().Style()
	offset := style.GetPropertyValue("transform")
	if offset == "" {
		offset = fmt.Sprintf("margin %s %s",
			style.GetPropertyValue("margin-left"), style.GetPropertyValue("margin-top"))
	}
	return fmt.Sprintf("%s: %s", label, offset)
}

// Close disposes every widget.
func (s *Session) Close() {
	for _, w := range s.Widgets {
		w.Dispose()
	}
}
