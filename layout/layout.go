// Package layout handles the layout/box model calculations.
//
// The engine implements the subset of CSS visual formatting the toolkit
// needs to produce believable geometry: block flow with margins and
// padding, explicit and percentage sizes, relative offsets, absolutely
// and fixed positioned boxes with shrink-to-fit widths, display none,
// monospaced text runs and scroll extents. Margins do not collapse and
// there is no inline formatting context: every element is a block.
package layout

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vibeui.layout'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.layout")
}

// Text metrics used to measure text runs.
const (
	CharWidth  = 8.0
	LineHeight = 16.0
)

// Dimensions represents the dimensions of a layout box.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Margin  EdgeSizes
}

// Rect represents a rectangular area.
type Rect struct {
	X, Y, Width, Height float64
}

// EdgeSizes represents the sizes of edges (top, right, bottom, left).
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// BoxType represents the type of layout box.
type BoxType int

const (
	BlockBox BoxType = iota
	TextBox
	NoneBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case TextBox:
		return "text"
	case NoneBox:
		return "none"
	}
	return "unknown"
}

// PositionType represents the CSS position property.
type PositionType int

const (
	PositionStatic PositionType = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// OutOfFlow reports whether boxes of this position type leave normal flow.
func (p PositionType) OutOfFlow() bool {
	return p == PositionAbsolute || p == PositionFixed
}

// OverflowType represents the CSS overflow property.
type OverflowType int

const (
	OverflowVisible OverflowType = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

func determineBoxType(display string) BoxType {
	if strings.EqualFold(strings.TrimSpace(display), "none") {
		return NoneBox
	}
	return BlockBox
}

func determinePositionType(position string) PositionType {
	switch strings.ToLower(strings.TrimSpace(position)) {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	case "sticky":
		return PositionSticky
	}
	return PositionStatic
}

func determineOverflowType(overflow string) OverflowType {
	switch strings.ToLower(strings.TrimSpace(overflow)) {
	case "hidden", "clip":
		return OverflowHidden
	case "scroll":
		return OverflowScroll
	case "auto", "overlay":
		return OverflowAuto
	}
	return OverflowVisible
}

// PaddingBox returns the area covered by content and padding.
func (d *Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the area covered by content, padding, and border.
// Borders are not modelled, so it equals the padding box.
func (d *Dimensions) BorderBox() Rect {
	return d.PaddingBox()
}

// MarginBox returns the area covered by content, padding, border, and margin.
func (d *Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// ExpandedBy returns a rectangle expanded by the given edge sizes.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

// LayoutContext maintains state during layout, most importantly the stack
// of containing blocks for boxes in normal flow.
type LayoutContext struct {
	ViewportWidth  float64
	ViewportHeight float64

	containingBlocks []*Dimensions
	deferred         []*LayoutBox
}

// NewLayoutContext creates a new layout context whose initial containing
// block is the viewport.
func NewLayoutContext(viewportWidth, viewportHeight float64) *LayoutContext {
	icb := &Dimensions{
		Content: Rect{Width: viewportWidth, Height: viewportHeight},
	}
	return &LayoutContext{
		ViewportWidth:    viewportWidth,
		ViewportHeight:   viewportHeight,
		containingBlocks: []*Dimensions{icb},
	}
}

// PushContainingBlock pushes a new containing block onto the stack.
func (ctx *LayoutContext) PushContainingBlock(dims *Dimensions) {
	ctx.containingBlocks = append(ctx.containingBlocks, dims)
}

// PopContainingBlock pops the current containing block. The initial
// containing block is never popped.
func (ctx *LayoutContext) PopContainingBlock() {
	if len(ctx.containingBlocks) > 1 {
		ctx.containingBlocks = ctx.containingBlocks[:len(ctx.containingBlocks)-1]
	}
}

// CurrentContainingBlock returns the current containing block.
func (ctx *LayoutContext) CurrentContainingBlock() *Dimensions {
	return ctx.containingBlocks[len(ctx.containingBlocks)-1]
}

// InitialContainingBlock returns the viewport-sized root containing block.
func (ctx *LayoutContext) InitialContainingBlock() *Dimensions {
	return ctx.containingBlocks[0]
}

// deferBox queues an out-of-flow box for layout once normal flow is done.
func (ctx *LayoutContext) deferBox(box *LayoutBox) {
	ctx.deferred = append(ctx.deferred, box)
}
