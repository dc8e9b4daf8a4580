// Package dom provides the document object model the toolkit operates on:
// a node tree with elements, inline styles, layout geometry, scroll state,
// event targets and the window that hosts the document.
package dom

// NodeType represents the type of a Node, with the DOM's numeric values.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// CommentNode represents a Comment node.
	CommentNode NodeType = 8
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CommentNode:
		return "COMMENT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
