package layout

import (
	"github.com/chrisuehlinger/vibeui/dom"
)

// Engine lays out a document and writes the resulting geometry onto its
// elements. It implements dom.Layouter, so the document calls it lazily
// whenever geometry is read after a change.
type Engine struct {
	root   *LayoutBox
	passes int
}

var _ dom.Layouter = (*Engine)(nil)

// Attach creates an engine and installs it as the document's layouter.
func Attach(doc *dom.Document) *Engine {
	e := &Engine{}
	doc.SetLayouter(e)
	return e
}

// Root returns the box tree of the last layout pass.
func (e *Engine) Root() *LayoutBox {
	return e.root
}

// Passes returns how many layout passes have run.
func (e *Engine) Passes() int {
	return e.passes
}

// Layout computes geometry for every rendered element of doc. Elements
// that are not rendered lose their geometry.
func (e *Engine) Layout(doc *dom.Document) {
	e.passes++
	for _, el := range doc.QueryAllFunc(func(*dom.Element) bool { return true }) {
		el.SetGeometry(nil)
	}

	root := doc.DocumentElement()
	if root == nil {
		e.root = nil
		return
	}
	width, height := float64(dom.DefaultWidth), float64(dom.DefaultHeight)
	if win := doc.DefaultView(); win != nil {
		width, height = win.InnerWidth(), win.InnerHeight()
	}
	ctx := NewLayoutContext(width, height)

	e.root = buildLayoutTree(root, nil)
	if e.root == nil {
		return
	}
	e.root.layoutBlock(ctx, 0, 0)
	for len(ctx.deferred) > 0 {
		box := ctx.deferred[0]
		ctx.deferred = ctx.deferred[1:]
		box.layoutPositioned(ctx)
	}
	e.root.computeScrollExtents()
	e.root.writeGeometry()

	tracer().Debugf("layout pass %d: viewport %gx%g, document %gx%g",
		e.passes, width, height, e.root.scrollWidth, e.root.scrollHeight)
}
