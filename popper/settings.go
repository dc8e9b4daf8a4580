package popper

import (
	"errors"
	"strings"

	"github.com/chrisuehlinger/vibeui/dom"
)

// Placement is the side of the reference the node attaches to.
type Placement string

const (
	Top    Placement = "top"
	Right  Placement = "right"
	Bottom Placement = "bottom"
	Left   Placement = "left"
	Auto   Placement = "auto"
)

// Opposite returns the side across the reference. Auto has no opposite.
func (p Placement) Opposite() Placement {
	switch p {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return p
}

// IsVertical reports whether the node sits above or below the reference.
func (p Placement) IsVertical() bool {
	return p == Top || p == Bottom
}

// ParsePlacement parses a placement keyword, case-insensitively.
func ParsePlacement(s string) (Placement, bool) {
	switch p := Placement(strings.ToLower(strings.TrimSpace(s))); p {
	case Top, Right, Bottom, Left, Auto:
		return p, true
	}
	return "", false
}

// Position aligns the node with the reference along the edge it is
// attached to.
type Position string

const (
	Start        Position = "start"
	Center       Position = "center"
	End          Position = "end"
	AutoPosition Position = "auto"
)

// ParsePosition parses an alignment keyword, case-insensitively.
func ParsePosition(s string) (Position, bool) {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case Start, Center, End, AutoPosition:
		return p, true
	}
	return "", false
}

// Offset is the working translation of the floating node, in the frame
// of its nearest positioned ancestor.
type Offset struct {
	X, Y float64
}

// Settings configures a Positioner.
type Settings struct {
	// Reference is the element the node is anchored to. Required.
	Reference *dom.Element
	// Container optionally clips the region the node may occupy.
	Container *dom.Element

	Placement Placement
	Position  Position

	// Fixed declares the reference viewport-fixed: geometry is measured in
	// viewport coordinates and the window scroll is added at the end.
	Fixed bool

	// Spacing is the gap between reference and node.
	Spacing float64

	// MinContact is the overlap with the reference that clamping must
	// preserve. Nil uses the smaller of the two sizes on the clamped axis.
	MinContact *float64

	// UseGPU writes a translate3d transform instead of margins.
	UseGPU bool

	// Arrow is an optional element inside the node pointing at the
	// reference center.
	Arrow *dom.Element

	BeforeUpdate func(*Positioner)
	AfterUpdate  func(*Positioner)
}

// DefaultSettings returns the default configuration: auto placement,
// centered, 5px spacing, GPU positioning.
func DefaultSettings() Settings {
	return Settings{
		Placement: Auto,
		Position:  Center,
		Spacing:   5,
		UseGPU:    true,
	}
}

// MinContact returns a pointer suitable for Settings.MinContact.
func MinContact(v float64) *float64 {
	return &v
}

// Errors returned by New.
var (
	ErrNoNode      = errors.New("popper: no node to position")
	ErrNoReference = errors.New("popper: no reference element")
	ErrNoWindow    = errors.New("popper: node's document has no window")
)
