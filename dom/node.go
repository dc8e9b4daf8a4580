package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
)

// Node represents a node in the DOM tree. Document, Element, Text and
// Comment nodes all share this representation.
type Node struct {
	nodeType NodeType
	nodeName string
	ownerDoc *Document

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data (only one will be non-nil based on nodeType)
	data         *string
	elementData  *elementData
	documentData *documentData
}

// ElementGeometry holds computed layout geometry for an element.
// Coordinates are in page space, before any scrolling is applied.
type ElementGeometry struct {
	// Border box
	X, Y, Width, Height float64

	MarginTop, MarginRight, MarginBottom, MarginLeft     float64
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft float64

	OffsetParent *Element

	// Scroll extents; the scroll position itself lives on the element
	ScrollWidth, ScrollHeight float64
	ClientWidth, ClientHeight float64
}

// elementData holds data specific to Element nodes.
type elementData struct {
	tagName          string
	attributes       []Attr
	styleDeclaration *CSSStyleDeclaration
	classList        *ClassList
	events           *EventTarget

	scrollTop, scrollLeft float64

	// Layout geometry - set during layout computation
	geometry *ElementGeometry

	// Stylesheet declarations matching the element, valid while
	// declaredVersion equals the document's style version
	declared        map[string]css.Declaration
	declaredVersion int
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node. Elements report their upper-case
// tag name, other nodes "#text", "#comment" or "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// OwnerDocument returns the document this node belongs to.
func (n *Node) OwnerDocument() *Document {
	return n.ownerDoc
}

// ParentNode returns the parent of this node, or nil.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent node if it is an element, or nil.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// PreviousSibling returns the previous sibling, or nil.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// ChildNodes returns a snapshot of the node's children.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}
	return children
}

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// AsElement returns the node as an element, or nil if it is not one.
func (n *Node) AsElement() *Element {
	if n == nil || n.nodeType != ElementNode {
		return nil
	}
	return (*Element)(n)
}

// NodeValue returns the character data of text and comment nodes.
func (n *Node) NodeValue() string {
	if n.data != nil {
		return *n.data
	}
	return ""
}

// SetNodeValue replaces the character data of text and comment nodes.
// It has no effect on other node types.
func (n *Node) SetNodeValue(value string) {
	if n.data == nil {
		return
	}
	*n.data = value
	n.invalidateLayout()
}

// TextContent returns the concatenated text of this node and its descendants.
func (n *Node) TextContent() string {
	if n.data != nil {
		if n.nodeType == TextNode {
			return *n.data
		}
		return ""
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == TextNode {
			sb.WriteString(*c.data)
			continue
		}
		c.collectText(sb)
	}
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.data != nil {
		n.SetNodeValue(text)
		return
	}
	for n.firstChild != nil {
		n.removeChild(n.firstChild)
	}
	if text != "" && n.ownerDoc != nil {
		n.appendChild(n.ownerDoc.CreateTextNode(text))
	}
	n.invalidateLayout()
}

// Contains reports whether other is this node or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parentNode {
		if p == n {
			return true
		}
	}
	return false
}

// IsConnected reports whether the node is attached to its document.
func (n *Node) IsConnected() bool {
	if n.ownerDoc == nil {
		return false
	}
	return n.ownerDoc.AsNode().Contains(n)
}

// AppendChild adds a child node to the end of this node's children.
func (n *Node) AppendChild(child *Node) (*Node, error) {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts newChild before refChild. A nil refChild appends.
func (n *Node) InsertBefore(newChild, refChild *Node) (*Node, error) {
	if newChild == nil {
		return nil, ErrHierarchyRequest("cannot insert a nil node")
	}
	if n.nodeType != ElementNode && n.nodeType != DocumentNode {
		return nil, ErrHierarchyRequest("parent cannot have children")
	}
	if newChild.nodeType == DocumentNode {
		return nil, ErrHierarchyRequest("cannot insert a document")
	}
	if newChild.Contains(n) {
		return nil, ErrHierarchyRequest("the new child contains the parent")
	}
	if refChild != nil && refChild.parentNode != n {
		return nil, ErrNotFound("the reference node is not a child of this node")
	}
	if refChild == newChild {
		refChild = newChild.nextSibling
	}
	if newChild.parentNode != nil {
		newChild.parentNode.removeChild(newChild)
	}
	if refChild == nil {
		n.appendChild(newChild)
	} else {
		n.insertBefore(newChild, refChild)
	}
	n.invalidateLayout()
	return newChild, nil
}

// RemoveChild removes a child node from this node's children.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, ErrNotFound("the node to be removed is not a child of this node")
	}
	n.removeChild(child)
	n.invalidateLayout()
	return child, nil
}

func (n *Node) appendChild(c *Node) {
	c.parentNode = n
	c.prevSibling = n.lastChild
	c.nextSibling = nil
	if n.lastChild != nil {
		n.lastChild.nextSibling = c
	} else {
		n.firstChild = c
	}
	n.lastChild = c
}

func (n *Node) insertBefore(c, ref *Node) {
	c.parentNode = n
	c.nextSibling = ref
	c.prevSibling = ref.prevSibling
	if ref.prevSibling != nil {
		ref.prevSibling.nextSibling = c
	} else {
		n.firstChild = c
	}
	ref.prevSibling = c
}

func (n *Node) removeChild(c *Node) {
	if c.prevSibling != nil {
		c.prevSibling.nextSibling = c.nextSibling
	} else {
		n.firstChild = c.nextSibling
	}
	if c.nextSibling != nil {
		c.nextSibling.prevSibling = c.prevSibling
	} else {
		n.lastChild = c.prevSibling
	}
	c.parentNode = nil
	c.prevSibling = nil
	c.nextSibling = nil
}

// invalidateLayout marks the owning document's layout as stale.
func (n *Node) invalidateLayout() {
	if n.ownerDoc != nil {
		n.ownerDoc.Invalidate()
	}
}
