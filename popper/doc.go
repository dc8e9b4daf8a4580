/*
Package popper positions a floating element next to a reference element.

A Positioner anchors a floating node (a tooltip bubble, a popover, a menu)
to a reference element. Every call to Update runs five stages:

  - the geometry of node, reference, viewport, scroll parent, container and
    relative parent is measured,
  - viewport, scroll parent and container are intersected into the minimum
    box the node should stay within,
  - the side of the reference the node attaches to is resolved, flipping
    to the opposite side when the requested one lacks room,
  - the offset of the node is computed from the reference position, the
    placement, the alignment and the node's margins,
  - the offset is clamped into the minimum box, keeping a minimum overlap
    with the reference.

The result is written as an inline translate3d transform, or as margins
when GPU positioning is disabled. The placement math is available as free
functions over explicit rectangles (MinimumBox, ResolvePlacement,
AdjustPlacement, AdjustPosition, AdjustConstrain, ArrowOffset) so it can
be used and tested without a document.

A Positioner follows window resizes and scrolls, coalescing bursts of
events into one update per animation frame, until it is disposed.
*/
package popper

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vibeui.popper'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.popper")
}
