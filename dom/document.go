package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
)

// Document represents the entire HTML document.
type Document Node

// Layouter computes geometry for every element of a document. The document
// calls it lazily, the first time geometry is read after a change.
type Layouter interface {
	Layout(doc *Document)
}

// documentData holds data specific to Document nodes.
type documentData struct {
	window   *Window
	layouter Layouter
	dirty    bool

	// styleVersion counts invalidations; cascade results computed at an
	// older version are stale
	styleVersion    int
	resolver        *css.StyleResolver
	resolverVersion int
	parsedSheets    map[string]*css.Stylesheet
}

// NewDocument creates a new empty document that is not attached to a window.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{dirty: true, styleVersion: 1}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// DefaultView returns the window hosting the document, or nil.
func (d *Document) DefaultView() *Window {
	return d.documentData.window
}

// DocumentElement returns the root element.
func (d *Document) DocumentElement() *Element {
	for c := d.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// Head returns the head element, or nil.
func (d *Document) Head() *Element {
	return d.childOfRoot("HEAD")
}

// Body returns the body element, or nil.
func (d *Document) Body() *Element {
	return d.childOfRoot("BODY")
}

func (d *Document) childOfRoot(tagName string) *Element {
	root := d.DocumentElement()
	if root == nil {
		return nil
	}
	for _, c := range root.Children() {
		if c.TagName() == tagName {
			return c
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name.
func (d *Document) CreateElement(tagName string) *Element {
	node := newNode(ElementNode, strings.ToUpper(tagName), d)
	node.elementData = &elementData{
		tagName: strings.ToUpper(tagName),
	}
	return (*Element)(node)
}

// CreateTextNode creates a new text node.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.data = &data
	return node
}

// CreateComment creates a new comment node.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.data = &data
	return node
}

// AppendChild appends a child to the document node.
func (d *Document) AppendChild(child *Node) (*Node, error) {
	if child != nil && child.nodeType == ElementNode && d.DocumentElement() != nil {
		return nil, ErrHierarchyRequest("a document may only have one document element")
	}
	return d.AsNode().AppendChild(child)
}

// GetElementById returns the first element with the given id, or nil.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	found := queryAll(d.AsNode(), func(e *Element) bool { return e.Id() == id })
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// QueryAllFunc returns all elements of the document matching the predicate.
func (d *Document) QueryAllFunc(match func(*Element) bool) []*Element {
	return queryAll(d.AsNode(), match)
}

// SetLayouter installs the layout engine and schedules a layout.
func (d *Document) SetLayouter(l Layouter) {
	d.documentData.layouter = l
	d.documentData.dirty = true
}

// Invalidate marks the layout and the cascade as stale.
func (d *Document) Invalidate() {
	d.documentData.dirty = true
	d.documentData.styleVersion++
}

// NeedsLayout reports whether the layout is stale.
func (d *Document) NeedsLayout() bool {
	return d.documentData.dirty
}

// FlushLayout runs the layouter if the layout is stale. Without a layouter
// geometry is whatever was set explicitly through SetGeometry.
func (d *Document) FlushLayout() {
	dd := d.documentData
	if !dd.dirty || dd.layouter == nil {
		return
	}
	dd.dirty = false
	dd.layouter.Layout(d)
}
