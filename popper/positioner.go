package popper

import (
	"fmt"

	"github.com/chrisuehlinger/vibeui/css"
	"github.com/chrisuehlinger/vibeui/dom"
)

// PlacementAttribute records the resolved placement on node and reference.
const PlacementAttribute = "data-placement"

// IsPositioned reports whether el has a non-static position.
func IsPositioned(el *dom.Element) bool {
	return css.IsPositioned(el.ComputedStyle("position"))
}

// IsScrollable reports whether el scrolls its overflowing content.
func IsScrollable(el *dom.Element) bool {
	return el.IsScrollContainer()
}

// eventSource is implemented by dom.Window and dom.Element.
type eventSource interface {
	AddEventListener(eventType string, fn dom.EventListener) dom.ListenerID
	RemoveEventListener(eventType string, id dom.ListenerID) bool
}

// subscription is a listener this Positioner registered and must remove.
type subscription struct {
	source    eventSource
	eventType string
	id        dom.ListenerID
}

// Positioner keeps a floating node anchored to a reference element. While
// active it owns the node's inline position, top, left, transform and
// margin-left/margin-top styles; Dispose restores what was there before.
type Positioner struct {
	node     *dom.Element
	window   *dom.Window
	settings Settings

	relativeParent *dom.Element
	scrollParent   *dom.Element

	subscriptions []subscription
	frame         int
	saved         map[string]string

	placement Placement
	offset    Offset
	updates   int
	disposed  bool
}

// geometry is one measurement of everything Update reads.
type geometry struct {
	node, reference, viewport Rect
	scroll, container         *Rect
	relative                  *Rect
}

// ownedProperties are the node styles a Positioner writes.
var ownedProperties = []string{"position", "top", "left", "transform", "margin-left", "margin-top"}

// New anchors node to settings.Reference, runs a first update and starts
// following window resizes and scrolls. Empty Placement and Position
// settings default to auto and center.
func New(node *dom.Element, settings Settings) (*Positioner, error) {
	if node == nil {
		return nil, ErrNoNode
	}
	if settings.Reference == nil {
		return nil, ErrNoReference
	}
	win := node.OwnerDocument().DefaultView()
	if win == nil {
		return nil, ErrNoWindow
	}
	if settings.Placement == "" {
		settings.Placement = Auto
	}
	if settings.Position == "" {
		settings.Position = Center
	}

	p := &Positioner{
		node:     node,
		window:   win,
		settings: settings,
		saved:    make(map[string]string),
	}
	p.relativeParent = node.ClosestFunc(IsPositioned, nil)
	p.scrollParent = node.ClosestFunc(func(el *dom.Element) bool {
		return IsScrollable(el) && IsPositioned(el)
	}, node.OwnerDocument().Body())

	style := node.Style()
	for _, prop := range ownedProperties {
		p.saved[prop] = style.GetPropertyValue(prop)
	}
	style.SetProperty("position", "absolute")
	style.SetProperty("top", "0")
	style.SetProperty("left", "0")

	p.subscribe(win, "resize")
	p.subscribe(win, "scroll")
	if p.scrollParent != nil {
		p.subscribe(p.scrollParent, "scroll")
	}

	p.Update()
	return p, nil
}

func (p *Positioner) subscribe(source eventSource, eventType string) {
	id := source.AddEventListener(eventType, func(*dom.Event) { p.schedule() })
	p.subscriptions = append(p.subscriptions, subscription{
		source:    source,
		eventType: eventType,
		id:        id,
	})
}

// schedule requests one update for the next animation frame. Requests made
// while one is pending are absorbed.
func (p *Positioner) schedule() {
	if p.disposed || p.frame != 0 {
		return
	}
	p.frame = p.window.RequestAnimationFrame(func(float64) {
		p.frame = 0
		p.Update()
	})
}

// Node returns the floating element.
func (p *Positioner) Node() *dom.Element {
	return p.node
}

// Reference returns the element the node is anchored to.
func (p *Positioner) Reference() *dom.Element {
	return p.settings.Reference
}

// Settings returns the effective settings.
func (p *Positioner) Settings() Settings {
	return p.settings
}

// Placement returns the placement resolved by the last update, or "" if
// none has run.
func (p *Positioner) Placement() Placement {
	return p.placement
}

// Offset returns the offset written by the last update.
func (p *Positioner) Offset() Offset {
	return p.offset
}

// Updates returns how many updates have written styles.
func (p *Positioner) Updates() int {
	return p.updates
}

// RelativeParent returns the nearest positioned ancestor of the node, the
// frame its offset is expressed in, or nil for the page.
func (p *Positioner) RelativeParent() *dom.Element {
	return p.relativeParent
}

// ScrollParent returns the nearest positioned scroll container above the
// node, or nil.
func (p *Positioner) ScrollParent() *dom.Element {
	return p.scrollParent
}

// IsDisposed reports whether Dispose has been called.
func (p *Positioner) IsDisposed() bool {
	return p.disposed
}

// Update measures the document and repositions the node. It does nothing
// if the positioner is disposed or the node is not in the document.
// Repeated updates without a change in between write identical styles.
func (p *Positioner) Update() {
	if p.disposed || !p.node.IsConnected() {
		return
	}
	if p.settings.BeforeUpdate != nil {
		p.settings.BeforeUpdate(p)
		// the hook may dispose the positioner or detach the node
		if p.disposed || !p.node.IsConnected() {
			return
		}
	}

	p.resetOffset()
	g := p.collect()

	minimum := MinimumBox(g.viewport, g.scroll, g.container)
	placement := ResolvePlacement(g.node, g.reference, minimum, p.settings.Placement, p.settings.Spacing)
	p.node.SetAttribute(PlacementAttribute, string(placement))
	p.settings.Reference.SetAttribute(PlacementAttribute, string(placement))

	offset := Offset{X: round(g.reference.X), Y: round(g.reference.Y)}
	if g.relative != nil {
		offset.X -= round(g.relative.X)
		offset.Y -= round(g.relative.Y)
	}
	AdjustPlacement(&offset, g.node, g.reference, placement, p.settings.Spacing)
	position := ResolvePosition(g.node, g.reference, minimum, placement, p.settings.Position)
	AdjustPosition(&offset, g.node, g.reference, placement, position)
	offset.X -= css.LengthOrZero(p.node.ComputedStyle("margin-left"), 0)
	offset.Y -= css.LengthOrZero(p.node.ComputedStyle("margin-top"), 0)

	AdjustConstrain(&offset, g.node, g.reference, minimum, g.relative, placement, p.settings.MinContact)
	offset.X, offset.Y = round(offset.X), round(offset.Y)
	if p.scrollParent != nil {
		offset.X += p.scrollParent.ScrollLeft()
		offset.Y += p.scrollParent.ScrollTop()
	}
	if p.settings.Fixed {
		offset.X += p.window.ScrollX()
		offset.Y += p.window.ScrollY()
	}

	p.writeOffset(offset)
	if p.settings.Arrow != nil {
		p.positionArrow(g.reference, placement)
	}

	p.placement = placement
	p.offset = offset
	p.updates++
	tracer().Debugf("popper: %s placed %s/%s at (%g, %g) in %s",
		describe(p.node), placement, position, offset.X, offset.Y, minimum)

	if p.settings.AfterUpdate != nil {
		p.settings.AfterUpdate(p)
	}
}

// collect measures node, reference and the boxes that bound them.
func (p *Positioner) collect() geometry {
	g := geometry{
		node:      p.measure(p.node),
		reference: p.measure(p.settings.Reference),
	}
	var sx, sy float64
	if !p.settings.Fixed {
		sx, sy = p.window.ScrollX(), p.window.ScrollY()
	}
	g.viewport = NewRect(sx, sy, p.window.ClientWidth(), p.window.ClientHeight())
	if p.scrollParent != nil {
		r := p.measure(p.scrollParent)
		g.scroll = &r
	}
	if p.settings.Container != nil {
		r := p.measure(p.settings.Container)
		g.container = &r
	}
	if p.relativeParent != nil {
		r := p.measure(p.relativeParent)
		g.relative = &r
	}
	return g
}

// measure returns the element's box in page coordinates, or in viewport
// coordinates for fixed references.
func (p *Positioner) measure(el *dom.Element) Rect {
	r := RectFromDOM(el.GetBoundingClientRect())
	if p.settings.Fixed {
		return r
	}
	return r.Translate(p.window.ScrollX(), p.window.ScrollY())
}

// resetOffset removes the offset written by the previous update so the
// node is measured at its natural position.
func (p *Positioner) resetOffset() {
	style := p.node.Style()
	if p.settings.UseGPU {
		style.RemoveProperty("transform")
		return
	}
	style.RemoveProperty("margin-left")
	style.RemoveProperty("margin-top")
}

func (p *Positioner) writeOffset(offset Offset) {
	style := p.node.Style()
	if p.settings.UseGPU {
		style.SetProperty("transform", fmt.Sprintf("translate3d(%s, %s, 0)",
			css.FormatPx(offset.X), css.FormatPx(offset.Y)))
		return
	}
	style.SetProperty("margin-left", css.FormatPx(offset.X))
	style.SetProperty("margin-top", css.FormatPx(offset.Y))
}

// positionArrow re-measures the settled node and points the arrow at the
// reference center.
func (p *Positioner) positionArrow(reference Rect, placement Placement) {
	arrow := p.settings.Arrow
	property, value := ArrowOffset(p.measure(p.node), reference, p.measure(arrow), placement)
	style := arrow.Style()
	for _, edge := range []string{"top", "right", "bottom", "left"} {
		if edge != property {
			style.RemoveProperty(edge)
		}
	}
	style.SetProperty(property, css.FormatPx(value))
}

// Dispose stops following the document, cancels a pending update and
// restores the node's inline styles. Calling it again has no effect.
func (p *Positioner) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	if p.frame != 0 {
		p.window.CancelAnimationFrame(p.frame)
		p.frame = 0
	}
	for _, s := range p.subscriptions {
		s.source.RemoveEventListener(s.eventType, s.id)
	}
	p.subscriptions = nil

	p.resetOffset()
	style := p.node.Style()
	for _, prop := range ownedProperties {
		style.SetProperty(prop, p.saved[prop])
	}
	p.node.RemoveAttribute(PlacementAttribute)
	p.settings.Reference.RemoveAttribute(PlacementAttribute)
	tracer().Debugf("popper: disposed %s", describe(p.node))
}

func describe(el *dom.Element) string {
	if id := el.Id(); id != "" {
		return el.LocalName() + "#" + id
	}
	return el.LocalName()
}
