package popper

import (
	"math"
)

// spaces holds the room around the reference inside the minimum box.
type spaces struct {
	top, right, bottom, left float64
}

func spaceAround(reference, minimum Rect) spaces {
	return spaces{
		top:    reference.Top - minimum.Top,
		right:  minimum.Right - reference.Right,
		bottom: minimum.Bottom - reference.Bottom,
		left:   reference.Left - minimum.Left,
	}
}

func (s spaces) on(p Placement) float64 {
	switch p {
	case Top:
		return s.top
	case Right:
		return s.right
	case Bottom:
		return s.bottom
	case Left:
		return s.left
	}
	return 0
}

// need returns the room the node requires on side p.
func need(node Rect, p Placement, spacing float64) float64 {
	if p.IsVertical() {
		return node.Height + spacing
	}
	return node.Width + spacing
}

// fallbackOrder breaks ties when no axis fits cleanly.
var fallbackOrder = []Placement{Bottom, Top, Right, Left}

// ResolvePlacement picks the side of the reference the node attaches to.
//
// A concrete request is kept unless the node does not fit on that side
// and the opposite side has strictly more room, in which case it flips
// once. Auto prefers the horizontal axis when it has the most room and
// the node fits across it, then the vertical axis, then whichever side
// fitting the node has the most room (ties in the order bottom, top,
// right, left), and finally bottom.
func ResolvePlacement(node, reference, minimum Rect, requested Placement, spacing float64) Placement {
	s := spaceAround(reference, minimum)

	if requested != Auto {
		space, opposite := s.on(requested), s.on(requested.Opposite())
		if space < need(node, requested, spacing) && opposite > space {
			return requested.Opposite()
		}
		return requested
	}

	maxH, minH := math.Max(s.left, s.right), math.Min(s.left, s.right)
	maxV, minV := math.Max(s.top, s.bottom), math.Min(s.top, s.bottom)

	if maxH > maxV && maxH >= node.Width+spacing && minV >= (node.Height-reference.Height)/2 {
		if s.left > s.right {
			return Left
		}
		return Right
	}
	if maxV >= node.Height+spacing && minH >= (node.Width-reference.Width)/2 {
		if s.top > s.bottom {
			return Top
		}
		return Bottom
	}

	best, bestSpace := Placement(""), math.Inf(-1)
	for _, p := range fallbackOrder {
		space := s.on(p)
		if space >= need(node, p, spacing) && space > bestSpace {
			best, bestSpace = p, space
		}
	}
	if best != "" {
		return best
	}
	return Bottom
}
