package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
)

// Element represents an element in the DOM.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the upper-case tag name.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the lower-case tag name.
func (e *Element) LocalName() string {
	return strings.ToLower(e.elementData.tagName)
}

// OwnerDocument returns the element's document.
func (e *Element) OwnerDocument() *Document {
	return e.ownerDoc
}

// ParentElement returns the parent element, or nil.
func (e *Element) ParentElement() *Element {
	return e.AsNode().ParentElement()
}

// IsConnected reports whether the element is attached to its document.
func (e *Element) IsConnected() bool {
	return e.AsNode().IsConnected()
}

// AppendChild appends child to this element.
func (e *Element) AppendChild(child *Node) (*Node, error) {
	return e.AsNode().AppendChild(child)
}

// Remove detaches the element from its parent, if any.
func (e *Element) Remove() {
	if p := e.parentNode; p != nil {
		_, _ = p.RemoveChild(e.AsNode())
	}
}

// PreviousElementSibling returns the closest preceding sibling element, or nil.
func (e *Element) PreviousElementSibling() *Element {
	for s := e.prevSibling; s != nil; s = s.prevSibling {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// NextElementSibling returns the closest following sibling element, or nil.
func (e *Element) NextElementSibling() *Element {
	for s := e.nextSibling; s != nil; s = s.nextSibling {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// Children returns the element children of this element.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}

// TextContent returns the text of all descendant text nodes.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent replaces the element's children by a single text node.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// Id returns the element's id attribute.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the element's id attribute.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// Attributes returns a copy of the element's attributes in document order.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.elementData.attributes))
	copy(out, e.elementData.attributes)
	return out
}

// GetAttribute returns the value of the named attribute, or "".
func (e *Element) GetAttribute(name string) string {
	name = strings.ToLower(name)
	for _, a := range e.elementData.attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttribute reports whether the element carries the named attribute.
func (e *Element) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, a := range e.elementData.attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttribute sets an attribute, creating it if needed. Setting "style"
// re-parses the inline style declaration. Since selectors may test any
// attribute, a changed value invalidates layout.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	changed := !e.HasAttribute(name) || e.GetAttribute(name) != value
	e.setAttributeRaw(name, value)
	if name == "style" {
		if sd := e.elementData.styleDeclaration; sd != nil {
			sd.refreshFromAttribute()
		}
	}
	if changed || name == "style" {
		e.AsNode().invalidateLayout()
	}
}

// setAttributeRaw stores an attribute without any side effects.
func (e *Element) setAttributeRaw(name, value string) {
	for i, a := range e.elementData.attributes {
		if a.Name == name {
			e.elementData.attributes[i].Value = value
			return
		}
	}
	e.elementData.attributes = append(e.elementData.attributes, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	if !e.HasAttribute(name) {
		return
	}
	e.removeAttributeRaw(name)
	if name == "style" {
		if sd := e.elementData.styleDeclaration; sd != nil {
			sd.refreshFromAttribute()
		}
	}
	e.AsNode().invalidateLayout()
}

func (e *Element) removeAttributeRaw(name string) {
	attrs := e.elementData.attributes
	for i, a := range attrs {
		if a.Name == name {
			e.elementData.attributes = append(attrs[:i], attrs[i+1:]...)
			return
		}
	}
}

// Dataset returns the value of the data-* attribute for a camelCase key,
// e.g. "uiPlacement" reads data-ui-placement.
func (e *Element) Dataset(key string) (string, bool) {
	name := datasetAttributeName(key)
	if !e.HasAttribute(name) {
		return "", false
	}
	return e.GetAttribute(name), true
}

// SetDataset writes a data-* attribute for a camelCase key.
func (e *Element) SetDataset(key, value string) {
	e.SetAttribute(datasetAttributeName(key), value)
}

// datasetAttributeName converts a camelCase dataset key to its attribute.
func datasetAttributeName(key string) string {
	var sb strings.Builder
	sb.WriteString("data-")
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// ClassList returns the element's class list.
func (e *Element) ClassList() *ClassList {
	if e.elementData.classList == nil {
		e.elementData.classList = &ClassList{element: e}
	}
	return e.elementData.classList
}

// Style returns the CSSStyleDeclaration for this element's inline styles.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.elementData.styleDeclaration == nil {
		e.elementData.styleDeclaration = NewCSSStyleDeclaration(e)
	}
	return e.elementData.styleDeclaration
}

// ComputedStyle resolves a longhand property through the cascade: the
// inline style, then the rules of the document's style sheets by
// importance, specificity and order, then the user agent default. An
// important sheet declaration beats a normal inline one.
func (e *Element) ComputedStyle(property string) string {
	property = normalizeCSSPropertyName(property)
	decl, declared := e.declaredStyle()[property]
	if v, important, ok := e.inlineValue(property); ok {
		if !declared || !decl.Wins(important) {
			return v
		}
	}
	if declared {
		return decl.Value
	}
	return css.UserAgentDefault(e.elementData.tagName, property)
}

// inlineValue looks property up in the inline style. The overflow
// shorthand stands in for its longhands.
func (e *Element) inlineValue(property string) (value string, important, ok bool) {
	sd := e.Style()
	lookup := []string{property}
	switch property {
	case "overflow-x", "overflow-y":
		lookup = append(lookup, "overflow")
	}
	for _, p := range lookup {
		if v := sd.GetPropertyValue(p); v != "" {
			return v, sd.GetPropertyPriority(p) == "important", true
		}
	}
	return "", false, false
}

// IsScrollContainer reports whether the element's overflow clips and
// scrolls its content.
func (e *Element) IsScrollContainer() bool {
	return css.IsScrollableOverflow(e.ComputedStyle("overflow-x")) ||
		css.IsScrollableOverflow(e.ComputedStyle("overflow-y"))
}

// Geometry returns the element's layout geometry, flushing pending layout.
// Returns nil if layout has never been computed for the element.
func (e *Element) Geometry() *ElementGeometry {
	if e.ownerDoc != nil {
		e.ownerDoc.FlushLayout()
	}
	return e.elementData.geometry
}

// SetGeometry sets the element's layout geometry.
// This is called by the layout engine after layout computation.
func (e *Element) SetGeometry(g *ElementGeometry) {
	e.elementData.geometry = g
}

// GetBoundingClientRect returns the element's border box relative to the
// viewport. Scroll offsets of scrolling ancestors and of the window are
// subtracted (the window's only if no box in the chain is fixed) and the
// element's own translate transform is applied. Detached elements and
// elements without layout report a zero rect.
func (e *Element) GetBoundingClientRect() *DOMRect {
	geom := e.Geometry()
	if geom == nil || !e.IsConnected() {
		return NewDOMRect(0, 0, 0, 0)
	}
	tx, ty := css.ParseTranslate(e.ComputedStyle("transform"))
	x, y := geom.X+tx, geom.Y+ty

	fixed := false
	for p := e; p != nil; p = p.ParentElement() {
		if p != e && p.IsScrollContainer() {
			x -= p.elementData.scrollLeft
			y -= p.elementData.scrollTop
		}
		if p.ComputedStyle("position") == "fixed" {
			fixed = true
			break
		}
	}
	if !fixed {
		if win := e.ownerDoc.DefaultView(); win != nil {
			x -= win.ScrollX()
			y -= win.ScrollY()
		}
	}
	return NewDOMRect(x, y, geom.Width, geom.Height)
}

// OffsetWidth returns the layout width including padding and border.
func (e *Element) OffsetWidth() float64 {
	if geom := e.Geometry(); geom != nil {
		return geom.Width
	}
	return 0
}

// OffsetHeight returns the layout height including padding and border.
func (e *Element) OffsetHeight() float64 {
	if geom := e.Geometry(); geom != nil {
		return geom.Height
	}
	return 0
}

// OffsetParent returns the nearest positioned ancestor used by layout.
func (e *Element) OffsetParent() *Element {
	if geom := e.Geometry(); geom != nil {
		return geom.OffsetParent
	}
	return nil
}

// ClientWidth returns the inner width (content + padding).
func (e *Element) ClientWidth() float64 {
	if geom := e.Geometry(); geom != nil {
		return geom.ClientWidth
	}
	return 0
}

// ClientHeight returns the inner height (content + padding).
func (e *Element) ClientHeight() float64 {
	if geom := e.Geometry(); geom != nil {
		return geom.ClientHeight
	}
	return 0
}

// ScrollWidth returns the total width of the scrollable content.
func (e *Element) ScrollWidth() float64 {
	if geom := e.Geometry(); geom != nil {
		return geom.ScrollWidth
	}
	return 0
}

// ScrollHeight returns the total height of the scrollable content.
func (e *Element) ScrollHeight() float64 {
	if geom := e.Geometry(); geom != nil {
		return geom.ScrollHeight
	}
	return 0
}

// ScrollTop returns the scroll offset from the top.
func (e *Element) ScrollTop() float64 {
	return e.elementData.scrollTop
}

// ScrollLeft returns the scroll offset from the left.
func (e *Element) ScrollLeft() float64 {
	return e.elementData.scrollLeft
}

// ScrollTo sets the element's scroll position and dispatches a "scroll"
// event if it changed. Negative values are clamped to zero.
func (e *Element) ScrollTo(left, top float64) {
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	if left == e.elementData.scrollLeft && top == e.elementData.scrollTop {
		return
	}
	e.elementData.scrollLeft = left
	e.elementData.scrollTop = top
	e.DispatchEvent(NewEvent("scroll"))
}

// events returns the element's event target, creating it on first use.
func (e *Element) events() *EventTarget {
	if e.elementData.events == nil {
		e.elementData.events = NewEventTarget()
	}
	return e.elementData.events
}

// AddEventListener registers fn for events of the given type.
func (e *Element) AddEventListener(eventType string, fn EventListener) ListenerID {
	return e.events().AddEventListener(eventType, fn)
}

// RemoveEventListener removes a listener by the handle AddEventListener returned.
func (e *Element) RemoveEventListener(eventType string, id ListenerID) bool {
	return e.events().RemoveEventListener(eventType, id)
}

// DispatchEvent delivers ev to this element's listeners.
func (e *Element) DispatchEvent(ev *Event) {
	ev.Target = e
	e.events().DispatchEvent(ev)
}

// ListenerCount returns the number of listeners registered for eventType.
func (e *Element) ListenerCount(eventType string) int {
	if e.elementData.events == nil {
		return 0
	}
	return e.elementData.events.ListenerCount(eventType)
}

// ClosestFunc walks up from the element's parent and returns the first
// ancestor for which match returns true. The walk stops before reaching
// stop (which is never tested); a nil stop walks to the root.
func (e *Element) ClosestFunc(match func(*Element) bool, stop *Element) *Element {
	for p := e.ParentElement(); p != nil && p != stop; p = p.ParentElement() {
		if match(p) {
			return p
		}
	}
	return nil
}

// QueryAllFunc returns all descendant elements matching the predicate, in
// document order.
func (e *Element) QueryAllFunc(match func(*Element) bool) []*Element {
	return queryAll(e.AsNode(), match)
}

func queryAll(root *Node, match func(*Element) bool) []*Element {
	var out []*Element
	var walk func(n *Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if el := c.AsElement(); el != nil {
				if match(el) {
					out = append(out, el)
				}
				walk(c)
			}
		}
	}
	walk(root)
	return out
}
