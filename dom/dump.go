package dom

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump renders the element subtree under n as an indented tree, one line
// per element with its id, classes and laid-out border box. Text and
// comment nodes are omitted. It is meant for debugging and test logs.
func Dump(n *Node) string {
	printer := tp.New()
	for c := n.firstChild; c != nil; c = c.nextSibling {
		dumpNode(printer, c)
	}
	return printer.String()
}

func dumpNode(printer tp.Tree, n *Node) {
	el := n.AsElement()
	if el == nil {
		return
	}
	label := describe(el)
	if !hasElementChildren(n) {
		printer.AddNode(label)
		return
	}
	branch := printer.AddBranch(label)
	for c := n.firstChild; c != nil; c = c.nextSibling {
		dumpNode(branch, c)
	}
}

func hasElementChildren(n *Node) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

func describe(el *Element) string {
	var sb strings.Builder
	sb.WriteString(el.LocalName())
	if id := el.Id(); id != "" {
		sb.WriteString("#" + id)
	}
	for _, class := range el.ClassList().Values() {
		sb.WriteString("." + class)
	}
	if geom := el.elementData.geometry; geom != nil {
		fmt.Fprintf(&sb, " [%g,%g %gx%g]", geom.X, geom.Y, geom.Width, geom.Height)
	}
	if p := el.GetAttribute("data-placement"); p != "" {
		sb.WriteString(" placement=" + p)
	}
	return sb.String()
}
