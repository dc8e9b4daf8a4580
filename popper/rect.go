package popper

import (
	"fmt"
	"math"

	"github.com/chrisuehlinger/vibeui/dom"
)

// Rect is an axis-aligned box. Right and Bottom always equal X+Width and
// Y+Height; rects are built from fresh measurements and never updated in
// place.
type Rect struct {
	Top, Right, Bottom, Left float64
	X, Y, Width, Height      float64
}

// NewRect creates a rect from its origin and size. Negative sizes are
// normalized so that Right >= Left and Bottom >= Top.
func NewRect(x, y, width, height float64) Rect {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	return Rect{
		Top:    y,
		Right:  x + width,
		Bottom: y + height,
		Left:   x,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// RectFromDOM converts a DOM rect. A nil rect yields the zero rect.
func RectFromDOM(r *dom.DOMRect) Rect {
	if r == nil {
		return Rect{}
	}
	return NewRect(r.X, r.Y, r.Width, r.Height)
}

// Translate returns the rect moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return NewRect(r.X+dx, r.Y+dy, r.Width, r.Height)
}

// IsEmpty reports whether the rect encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g, %g, %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// MinimumBox intersects the viewport with the optional scroll parent and
// container boxes. Absent boxes do not constrain. An empty intersection is
// returned as is, with Right < Left or Bottom < Top.
func MinimumBox(viewport Rect, scroll, container *Rect) Rect {
	top, right, bottom, left := viewport.Top, viewport.Right, viewport.Bottom, viewport.Left
	for _, box := range []*Rect{scroll, container} {
		if box == nil {
			continue
		}
		top = math.Max(top, box.Top)
		left = math.Max(left, box.Left)
		right = math.Min(right, box.Right)
		bottom = math.Min(bottom, box.Bottom)
	}
	return Rect{
		Top:    top,
		Right:  right,
		Bottom: bottom,
		Left:   left,
		X:      left,
		Y:      top,
		Width:  right - left,
		Height: bottom - top,
	}
}

// round rounds half up, matching the rounding browsers apply to offsets.
func round(v float64) float64 {
	return math.Floor(v + 0.5)
}
