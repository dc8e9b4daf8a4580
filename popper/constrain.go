package popper

import (
	"math"
)

// AdjustConstrain clamps the offset so the node stays inside the minimum
// box along the axis of the edge it is attached to: x for top and bottom,
// y for left and right. The offset is translated into the minimum box
// frame through relative, the box of the node's positioned ancestor.
//
// Overflow past the far edge pulls the node back, but not so far that its
// overlap with the reference drops below minContact. Underflow past the
// near edge pushes it forward under the same limit. The near edge is
// checked last, on the already corrected offset, so it wins when the node
// overflows both edges.
func AdjustConstrain(offset *Offset, node, reference, minimum Rect, relative *Rect, p Placement, minContact *float64) {
	var relX, relY float64
	if relative != nil {
		relX, relY = relative.X, relative.Y
	}

	if p.IsVertical() {
		contact := contactOf(minContact, reference.Width, node.Width)
		offset.X = constrainAxis(offset.X, relX, node.Width,
			reference.Left, reference.Right, minimum.Left, minimum.Right, contact)
		return
	}
	contact := contactOf(minContact, reference.Height, node.Height)
	offset.Y = constrainAxis(offset.Y, relY, node.Height,
		reference.Top, reference.Bottom, minimum.Top, minimum.Bottom, contact)
}

func contactOf(minContact *float64, referenceSize, nodeSize float64) float64 {
	if minContact != nil {
		return *minContact
	}
	return math.Min(referenceSize, nodeSize)
}

// constrainAxis clamps v, the node's leading coordinate in the relative
// frame, along one axis.
func constrainAxis(v, rel, size, refNear, refFar, minNear, minFar, contact float64) float64 {
	if far := v + rel + size; far > minFar {
		limit := refNear + contact - size - rel
		v = math.Max(v-(far-minFar), math.Min(v, limit))
	}
	if near := v + rel; near < minNear {
		limit := refFar - contact - rel
		v = math.Min(v+(minNear-near), math.Max(v, limit))
	}
	return v
}
