package popper

import (
	"math"
)

// AdjustPlacement moves the offset off the reference onto side p: above
// or left of it by the node's size, below or right of it by the
// reference's size, plus spacing.
func AdjustPlacement(offset *Offset, node, reference Rect, p Placement, spacing float64) {
	switch p {
	case Top:
		offset.Y -= node.Height + spacing
	case Right:
		offset.X += reference.Width + spacing
	case Bottom:
		offset.Y += reference.Height + spacing
	case Left:
		offset.X -= node.Width + spacing
	}
}

// AdjustPosition aligns the node with the reference along the edge it is
// attached to. Start aligns the leading edges, center the centers and end
// the trailing edges.
func AdjustPosition(offset *Offset, node, reference Rect, p Placement, position Position) {
	if p.IsVertical() {
		offset.X -= alignmentShift(node.Width-reference.Width, position)
		return
	}
	offset.Y -= alignmentShift(node.Height-reference.Height, position)
}

func alignmentShift(delta float64, position Position) float64 {
	switch position {
	case Center:
		return delta / 2
	case End:
		return delta
	}
	return 0
}

// ResolvePosition turns an auto alignment into a concrete one: center when
// the centered node fits the minimum box along the edge, otherwise start,
// otherwise end, and center when none fits. Concrete alignments are
// returned unchanged.
func ResolvePosition(node, reference, minimum Rect, p Placement, position Position) Position {
	if position != AutoPosition {
		return position
	}
	for _, candidate := range []Position{Center, Start, End} {
		if p.IsVertical() {
			x := reference.X - alignmentShift(node.Width-reference.Width, candidate)
			if x >= minimum.Left && x+node.Width <= minimum.Right {
				return candidate
			}
			continue
		}
		y := reference.Y - alignmentShift(node.Height-reference.Height, candidate)
		if y >= minimum.Top && y+node.Height <= minimum.Bottom {
			return candidate
		}
	}
	return Center
}

// ArrowOffset returns the style property and value that point an arrow of
// the given size at the reference center. For top and bottom placements
// the arrow moves along x and the property is "left"; otherwise along y
// as "top". The value is clamped so the arrow stays within the node.
func ArrowOffset(node, reference, arrow Rect, p Placement) (property string, value float64) {
	if p.IsVertical() {
		v := reference.X + reference.Width/2 - node.X - arrow.Width/2
		return "left", clamp(round(v), 0, math.Max(node.Width-arrow.Width, 0))
	}
	v := reference.Y + reference.Height/2 - node.Y - arrow.Height/2
	return "top", clamp(round(v), 0, math.Max(node.Height-arrow.Height, 0))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
