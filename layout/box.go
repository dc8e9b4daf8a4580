package layout

import (
	"math"
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
	"github.com/chrisuehlinger/vibeui/dom"
)

// LayoutBox represents a box in the layout tree.
type LayoutBox struct {
	Dimensions Dimensions
	BoxType    BoxType
	Position   PositionType
	Overflow   OverflowType
	Element    *dom.Element // nil for text boxes
	Text       string       // collapsed text of a text box
	Parent     *LayoutBox
	Children   []*LayoutBox

	// positioned is the nearest ancestor box with a non-static position,
	// the containing block of absolutely positioned boxes.
	positioned *LayoutBox

	staticX, staticY          float64
	scrollWidth, scrollHeight float64
}

// buildLayoutTree constructs the box for el and its descendants. Elements
// with display none produce no box.
func buildLayoutTree(el *dom.Element, parent *LayoutBox) *LayoutBox {
	boxType := determineBoxType(el.ComputedStyle("display"))
	if boxType == NoneBox {
		return nil
	}
	box := &LayoutBox{
		BoxType:  boxType,
		Position: determinePositionType(el.ComputedStyle("position")),
		Overflow: overflowOf(el),
		Element:  el,
		Parent:   parent,
	}
	if parent != nil {
		if parent.Position != PositionStatic {
			box.positioned = parent
		} else {
			box.positioned = parent.positioned
		}
	}

	for n := el.AsNode().FirstChild(); n != nil; n = n.NextSibling() {
		switch n.NodeType() {
		case dom.ElementNode:
			if child := buildLayoutTree(n.AsElement(), box); child != nil {
				box.Children = append(box.Children, child)
			}
		case dom.TextNode:
			text := strings.Join(strings.Fields(n.NodeValue()), " ")
			if text != "" {
				box.Children = append(box.Children, &LayoutBox{
					BoxType: TextBox,
					Text:    text,
					Parent:  box,
				})
			}
		}
	}
	return box
}

// overflowOf combines both overflow axes; the box scrolls if either does.
func overflowOf(el *dom.Element) OverflowType {
	x := determineOverflowType(el.ComputedStyle("overflow-x"))
	y := determineOverflowType(el.ComputedStyle("overflow-y"))
	if x > y {
		return x
	}
	return y
}

// length resolves a length property of the box's element.
func (box *LayoutBox) length(property string, percentBase float64) (float64, bool) {
	if box.Element == nil {
		return 0, false
	}
	return css.ParseLength(box.Element.ComputedStyle(property), percentBase)
}

// calculateEdges resolves margins and padding. Percentages refer to the
// containing block width, as in CSS.
func (box *LayoutBox) calculateEdges(cb *Dimensions) {
	w := cb.Content.Width
	edge := func(prop string) float64 {
		v, _ := box.length(prop, w)
		return v
	}
	d := &box.Dimensions
	d.Margin = EdgeSizes{
		Top:    edge("margin-top"),
		Right:  edge("margin-right"),
		Bottom: edge("margin-bottom"),
		Left:   edge("margin-left"),
	}
	d.Padding = EdgeSizes{
		Top:    math.Max(edge("padding-top"), 0),
		Right:  math.Max(edge("padding-right"), 0),
		Bottom: math.Max(edge("padding-bottom"), 0),
		Left:   math.Max(edge("padding-left"), 0),
	}
}

func (box *LayoutBox) horizontalEdges() float64 {
	d := &box.Dimensions
	return d.Margin.Left + d.Margin.Right + d.Padding.Left + d.Padding.Right
}

func (box *LayoutBox) verticalEdges() float64 {
	d := &box.Dimensions
	return d.Margin.Top + d.Margin.Bottom + d.Padding.Top + d.Padding.Bottom
}

// explicitHeight returns the declared height. Percentages only resolve
// against a containing block of known height.
func (box *LayoutBox) explicitHeight(cb *Dimensions) (float64, bool) {
	if box.Element == nil {
		return 0, false
	}
	v := box.Element.ComputedStyle("height")
	if strings.HasSuffix(strings.TrimSpace(v), "%") && cb.Content.Height <= 0 {
		return 0, false
	}
	h, ok := css.ParseLength(v, cb.Content.Height)
	return math.Max(h, 0), ok
}

// calculateBlockWidth computes the content width of a box in normal flow.
// An auto width fills the containing block.
func (box *LayoutBox) calculateBlockWidth(cb *Dimensions) float64 {
	if w, ok := box.length("width", cb.Content.Width); ok {
		return math.Max(w, 0)
	}
	return math.Max(cb.Content.Width-box.horizontalEdges(), 0)
}

// relativeOffset returns the shift of a relatively positioned box.
func (box *LayoutBox) relativeOffset(cb *Dimensions) (dx, dy float64) {
	if left, ok := box.length("left", cb.Content.Width); ok {
		dx = left
	} else if right, ok := box.length("right", cb.Content.Width); ok {
		dx = -right
	}
	if top, ok := box.length("top", cb.Content.Height); ok {
		dy = top
	} else if bottom, ok := box.length("bottom", cb.Content.Height); ok {
		dy = -bottom
	}
	return dx, dy
}

// maxContentWidth returns the width of the box's margin box when laid out
// without any line breaks. Out-of-flow children do not contribute.
func (box *LayoutBox) maxContentWidth(cb *Dimensions) float64 {
	if box.BoxType == TextBox {
		return float64(len([]rune(box.Text))) * CharWidth
	}
	edges := box.horizontalEdges()
	if w, ok := box.length("width", cb.Content.Width); ok {
		return math.Max(w, 0) + edges
	}
	widest := 0.0
	for _, child := range box.Children {
		if child.Position.OutOfFlow() {
			continue
		}
		if child.BoxType == BlockBox {
			child.calculateEdges(cb)
		}
		widest = math.Max(widest, child.maxContentWidth(cb))
	}
	return widest + edges
}

// layoutText lays out a text run at (x, y), wrapping at any character when
// it is wider than width.
func (box *LayoutBox) layoutText(x, y, width float64) {
	chars := len([]rune(box.Text))
	perLine := int(width / CharWidth)
	if perLine < 1 {
		perLine = 1
	}
	lines := (chars + perLine - 1) / perLine
	used := chars
	if used > perLine {
		used = perLine
	}
	box.Dimensions.Content = Rect{
		X:      x,
		Y:      y,
		Width:  float64(used) * CharWidth,
		Height: float64(lines) * LineHeight,
	}
}

// layoutBlock lays out a box in normal flow whose margin box starts at
// (x, y) inside the current containing block.
func (box *LayoutBox) layoutBlock(ctx *LayoutContext, x, y float64) {
	cb := ctx.CurrentContainingBlock()
	box.calculateEdges(cb)
	d := &box.Dimensions
	d.Content.Width = box.calculateBlockWidth(cb)
	d.Content.X = x + d.Margin.Left + d.Padding.Left
	d.Content.Y = y + d.Margin.Top + d.Padding.Top
	if box.Position == PositionRelative {
		dx, dy := box.relativeOffset(cb)
		d.Content.X += dx
		d.Content.Y += dy
	}

	h, fixedHeight := box.explicitHeight(cb)
	d.Content.Height = h
	contentHeight := box.layoutChildren(ctx)
	if !fixedHeight {
		d.Content.Height = contentHeight
	}
}

// layoutChildren lays out the in-flow children top to bottom and queues
// the out-of-flow ones. It returns the height of the in-flow content.
func (box *LayoutBox) layoutChildren(ctx *LayoutContext) float64 {
	d := &box.Dimensions
	ctx.PushContainingBlock(d)
	defer ctx.PopContainingBlock()

	cursor := d.Content.Y
	for _, child := range box.Children {
		switch {
		case child.BoxType == TextBox:
			child.layoutText(d.Content.X, cursor, d.Content.Width)
			cursor += child.Dimensions.Content.Height
		case child.Position.OutOfFlow():
			child.staticX, child.staticY = d.Content.X, cursor
			ctx.deferBox(child)
		default:
			child.layoutBlock(ctx, d.Content.X, cursor)
			cd := &child.Dimensions
			cursor += cd.Content.Height + child.verticalEdges()
		}
	}
	return cursor - d.Content.Y
}

// layoutPositioned lays out an absolutely or fixed positioned box against
// its containing block: the viewport for fixed boxes, otherwise the
// padding box of the nearest positioned ancestor.
func (box *LayoutBox) layoutPositioned(ctx *LayoutContext) {
	cb := ctx.InitialContainingBlock().Content
	if box.Position == PositionAbsolute && box.positioned != nil {
		cb = box.positioned.Dimensions.PaddingBox()
	}
	cbDims := &Dimensions{Content: cb}
	box.calculateEdges(cbDims)
	d := &box.Dimensions

	left, hasLeft := box.length("left", cb.Width)
	right, hasRight := box.length("right", cb.Width)
	top, hasTop := box.length("top", cb.Height)
	bottom, hasBottom := box.length("bottom", cb.Height)

	switch w, ok := box.length("width", cb.Width); {
	case ok:
		d.Content.Width = math.Max(w, 0)
	case hasLeft && hasRight:
		d.Content.Width = math.Max(cb.Width-left-right-box.horizontalEdges(), 0)
	default:
		available := cb.Width - box.horizontalEdges()
		if hasLeft {
			available -= left
		} else if hasRight {
			available -= right
		}
		preferred := box.maxContentWidth(cbDims) - box.horizontalEdges()
		d.Content.Width = math.Max(math.Min(preferred, available), 0)
	}

	switch {
	case hasLeft:
		d.Content.X = cb.X + left + d.Margin.Left + d.Padding.Left
	case hasRight:
		d.Content.X = cb.X + cb.Width - right - d.Margin.Right - d.Padding.Right - d.Content.Width
	default:
		d.Content.X = box.staticX + d.Margin.Left + d.Padding.Left
	}

	h, fixedHeight := box.explicitHeight(cbDims)
	if !fixedHeight && hasTop && hasBottom {
		h, fixedHeight = math.Max(cb.Height-top-bottom-box.verticalEdges(), 0), true
	}
	d.Content.Y = 0
	d.Content.Height = h
	contentHeight := box.layoutChildren(ctx)
	if !fixedHeight {
		d.Content.Height = contentHeight
	}

	var y float64
	switch {
	case hasTop:
		y = cb.Y + top + d.Margin.Top + d.Padding.Top
	case hasBottom:
		y = cb.Y + cb.Height - bottom - d.Margin.Bottom - d.Padding.Bottom - d.Content.Height
	default:
		y = box.staticY + d.Margin.Top + d.Padding.Top
	}
	box.translate(0, y)
}

// translate moves the box and its laid-out descendants. Out-of-flow
// descendants are not laid out yet; only their static position moves.
func (box *LayoutBox) translate(dx, dy float64) {
	box.Dimensions.Content.X += dx
	box.Dimensions.Content.Y += dy
	for _, child := range box.Children {
		if child.Position.OutOfFlow() {
			child.staticX += dx
			child.staticY += dy
			continue
		}
		child.translate(dx, dy)
	}
}

// computeScrollExtents records the scrollable size of every block box.
func (box *LayoutBox) computeScrollExtents() {
	for _, child := range box.Children {
		child.computeScrollExtents()
	}
	if box.BoxType != BlockBox {
		return
	}
	pb := box.Dimensions.PaddingBox()
	right, bottom := pb.X+pb.Width, pb.Y+pb.Height
	for _, child := range box.Children {
		r, b := child.extent()
		right = math.Max(right, r+box.Dimensions.Padding.Right)
		bottom = math.Max(bottom, b+box.Dimensions.Padding.Bottom)
	}
	box.scrollWidth = right - pb.X
	box.scrollHeight = bottom - pb.Y
}

// extent returns the right and bottom edges of the area the box paints
// into its parent's scrollable overflow.
func (box *LayoutBox) extent() (right, bottom float64) {
	if box.Position == PositionFixed {
		return math.Inf(-1), math.Inf(-1)
	}
	d := &box.Dimensions
	if box.BoxType == TextBox {
		return d.Content.X + d.Content.Width, d.Content.Y + d.Content.Height
	}
	mb := d.MarginBox()
	right, bottom = mb.X+mb.Width, mb.Y+mb.Height
	if box.Overflow != OverflowVisible {
		return right, bottom
	}
	for _, child := range box.Children {
		r, b := child.extent()
		right, bottom = math.Max(right, r), math.Max(bottom, b)
	}
	return right, bottom
}

// writeGeometry stores the computed geometry on the elements.
func (box *LayoutBox) writeGeometry() {
	if box.BoxType != BlockBox || box.Element == nil {
		return
	}
	d := &box.Dimensions
	bb := d.BorderBox()
	box.Element.SetGeometry(&dom.ElementGeometry{
		X:             bb.X,
		Y:             bb.Y,
		Width:         bb.Width,
		Height:        bb.Height,
		MarginTop:     d.Margin.Top,
		MarginRight:   d.Margin.Right,
		MarginBottom:  d.Margin.Bottom,
		MarginLeft:    d.Margin.Left,
		PaddingTop:    d.Padding.Top,
		PaddingRight:  d.Padding.Right,
		PaddingBottom: d.Padding.Bottom,
		PaddingLeft:   d.Padding.Left,
		OffsetParent:  box.offsetParent(),
		ScrollWidth:   box.scrollWidth,
		ScrollHeight:  box.scrollHeight,
		ClientWidth:   bb.Width,
		ClientHeight:  bb.Height,
	})
	for _, child := range box.Children {
		child.writeGeometry()
	}
}

// offsetParent is the nearest positioned ancestor element, or body. Fixed
// boxes, the root and body have none.
func (box *LayoutBox) offsetParent() *dom.Element {
	if box.Position == PositionFixed || box.Parent == nil {
		return nil
	}
	if box.Element.TagName() == "BODY" {
		return nil
	}
	if box.positioned != nil {
		return box.positioned.Element
	}
	return box.Element.OwnerDocument().Body()
}
