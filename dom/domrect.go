package dom

import "fmt"

// DOMRect represents a rectangle in the DOM.
// It mirrors the DOMRect interface of the CSS geometry API.
// https://drafts.fxtf.org/geometry/#DOMRect
type DOMRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewDOMRect creates a new DOMRect with the given dimensions.
func NewDOMRect(x, y, width, height float64) *DOMRect {
	return &DOMRect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Top returns the top edge (y for positive height, y + height for negative).
func (r *DOMRect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Right returns the right edge (x + width for positive width, x for negative).
func (r *DOMRect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Bottom returns the bottom edge (y + height for positive height, y for negative).
func (r *DOMRect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge (x for positive width, x + width for negative).
func (r *DOMRect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Translate returns a copy of the rectangle moved by dx, dy.
func (r *DOMRect) Translate(dx, dy float64) *DOMRect {
	return NewDOMRect(r.X+dx, r.Y+dy, r.Width, r.Height)
}

func (r *DOMRect) String() string {
	return fmt.Sprintf("DOMRect(%g, %g, %g, %g)", r.X, r.Y, r.Width, r.Height)
}
