package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML parses an HTML document into a new window of the default size.
func ParseHTML(htmlContent string) (*Document, error) {
	return NewWindow(DefaultWidth, DefaultHeight).LoadHTML(htmlContent)
}

// LoadHTML replaces the window's document with the parsed markup.
func (w *Window) LoadHTML(htmlContent string) (*Document, error) {
	return w.Load(strings.NewReader(htmlContent))
}

// Load parses an HTML document from r into a fresh document hosted by w.
// The previous document's layouter is carried over.
func (w *Window) Load(r io.Reader) (*Document, error) {
	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	doc := NewDocument()
	if old := w.document; old != nil {
		doc.documentData.layouter = old.documentData.layouter
	}
	convertHTMLTree(netDoc, doc.AsNode(), doc)
	w.adopt(doc)
	return doc, nil
}

// convertHTMLTree converts an html.Node tree to our DOM tree.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var node *Node

		switch c.Type {
		case html.TextNode:
			node = doc.CreateTextNode(c.Data)

		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				el.setAttributeRaw(strings.ToLower(attr.Key), attr.Val)
			}
			node = el.AsNode()

		case html.CommentNode:
			node = doc.CreateComment(c.Data)

		default:
			// Doctype and error nodes are not represented.
			continue
		}

		parent.appendChild(node)
		convertHTMLTree(c, node, doc)
	}
}
