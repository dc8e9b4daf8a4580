package widget

import (
	"errors"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/popper"
)

// Widget is the lifecycle shared by tooltips and popovers.
type Widget interface {
	Show() error
	Hide()
	Toggle() error
	Refresh()
	IsShown() bool
	Dispose()
	Trigger() *dom.Element
	Element() *dom.Element
	Positioner() *popper.Positioner
}

// ErrDisposed is returned when showing a disposed widget.
var ErrDisposed = errors.New("widget: disposed")

// ErrNoTrigger is returned by the constructors for a nil trigger.
var ErrNoTrigger = errors.New("widget: no trigger element")

// ShowClass is added to the floating element while it is shown.
const ShowClass = "show"

// markup builds the floating element and returns it with its arrow.
type markup func(doc *dom.Document, s TooltipSettings) (tip, arrow *dom.Element)

// floating implements Widget for any markup.
type floating struct {
	kind     string
	trigger  *dom.Element
	settings TooltipSettings
	build    markup

	tip        *dom.Element
	positioner *popper.Positioner
	disposed   bool
}

func newFloating(kind string, trigger *dom.Element, s TooltipSettings, build markup) (*floating, error) {
	if trigger == nil {
		return nil, ErrNoTrigger
	}
	return &floating{kind: kind, trigger: trigger, settings: s, build: build}, nil
}

// Show builds the markup, attaches it and starts positioning it. Showing
// a shown widget refreshes it. Widgets without any text stay hidden.
func (f *floating) Show() error {
	if f.disposed {
		return ErrDisposed
	}
	if f.positioner != nil {
		f.Refresh()
		return nil
	}
	if f.settings.Title == "" && f.settings.Content == "" {
		tracer().Debugf("%s on %s has no content, not shown", f.kind, describe(f.trigger))
		return nil
	}

	doc := f.trigger.OwnerDocument()
	InstallStylesheet(doc)
	tip, arrow := f.build(doc, f.settings)
	container := f.settings.Container
	if container == nil {
		container = doc.Body()
	}
	if _, err := container.AppendChild(tip.AsNode()); err != nil {
		return err
	}
	p, err := popper.New(tip, f.settings.positionerSettings(f.trigger, arrow))
	if err != nil {
		tip.Remove()
		return err
	}
	_ = tip.ClassList().Add(ShowClass)
	f.tip, f.positioner = tip, p
	tracer().Infof("%s on %s shown %s", f.kind, describe(f.trigger), p.Placement())
	return nil
}

// Hide stops positioning and detaches the markup.
func (f *floating) Hide() {
	if f.positioner == nil {
		return
	}
	f.positioner.Dispose()
	_ = f.tip.ClassList().Remove(ShowClass)
	f.tip.Remove()
	f.positioner, f.tip = nil, nil
	tracer().Debugf("%s on %s hidden", f.kind, describe(f.trigger))
}

// Toggle shows a hidden widget and hides a shown one.
func (f *floating) Toggle() error {
	if f.IsShown() {
		f.Hide()
		return nil
	}
	return f.Show()
}

// Refresh repositions a shown widget.
func (f *floating) Refresh() {
	if f.positioner != nil {
		f.positioner.Update()
	}
}

func (f *floating) IsShown() bool {
	return f.positioner != nil
}

// Dispose hides the widget for good. Calling it again has no effect.
func (f *floating) Dispose() {
	if f.disposed {
		return
	}
	f.Hide()
	f.disposed = true
}

func (f *floating) Trigger() *dom.Element {
	return f.trigger
}

// Element returns the floating element while shown, otherwise nil.
func (f *floating) Element() *dom.Element {
	return f.tip
}

// Positioner returns the engine instance while shown, otherwise nil.
func (f *floating) Positioner() *popper.Positioner {
	return f.positioner
}

// div creates a div with the given class and inline style.
func div(doc *dom.Document, class string) *dom.Element {
	el := doc.CreateElement("div")
	el.SetAttribute("class", class)
	return el
}

func describe(el *dom.Element) string {
	if id := el.Id(); id != "" {
		return el.LocalName() + "#" + id
	}
	return el.LocalName()
}
