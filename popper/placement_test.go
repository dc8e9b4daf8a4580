package popper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimumBox(t *testing.T) {
	viewport := NewRect(0, 0, 1000, 800)

	assert.Equal(t, viewport, MinimumBox(viewport, nil, nil))

	scroll := NewRect(100, -50, 400, 400)
	container := NewRect(-20, 200, 300, 1000)
	got := MinimumBox(viewport, &scroll, &container)
	assert.Equal(t, NewRect(100, 200, 180, 150), got)

	// disjoint boxes produce an inverted rect rather than an error
	far := NewRect(2000, 0, 10, 10)
	empty := MinimumBox(viewport, &far, nil)
	assert.True(t, empty.IsEmpty())
	assert.Less(t, empty.Right, empty.Left)
}

func TestNewRectNormalizes(t *testing.T) {
	r := NewRect(100, 100, -50, -30)
	assert.Equal(t, 50.0, r.Left)
	assert.Equal(t, 100.0, r.Right)
	assert.Equal(t, 70.0, r.Top)
	assert.Equal(t, 100.0, r.Bottom)
	assert.Equal(t, r.X+r.Width, r.Right)
}

func TestResolvePlacementConcrete(t *testing.T) {
	viewport := NewRect(0, 0, 1000, 1000)
	tests := []struct {
		name      string
		node      Rect
		reference Rect
		minimum   Rect
		requested Placement
		want      Placement
	}{
		{
			name:      "top flips to bottom when there is no room above",
			node:      NewRect(0, 0, 50, 200),
			reference: NewRect(450, 10, 100, 20),
			minimum:   viewport,
			requested: Top,
			want:      Bottom,
		},
		{
			name:      "bottom flips to top near the bottom edge",
			node:      NewRect(0, 0, 50, 200),
			reference: NewRect(450, 950, 100, 20),
			minimum:   viewport,
			requested: Bottom,
			want:      Top,
		},
		{
			name:      "kept when the opposite side is not larger",
			node:      NewRect(0, 0, 50, 60),
			reference: NewRect(0, 40, 100, 20),
			minimum:   NewRect(0, 0, 100, 100),
			requested: Top,
			want:      Top,
		},
		{
			name:      "kept when it fits",
			node:      NewRect(0, 0, 50, 60),
			reference: NewRect(400, 400, 100, 20),
			minimum:   viewport,
			requested: Left,
			want:      Left,
		},
		{
			name:      "right flips to left",
			node:      NewRect(0, 0, 200, 20),
			reference: NewRect(900, 400, 50, 20),
			minimum:   viewport,
			requested: Right,
			want:      Left,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlacement(tt.node, tt.reference, tt.minimum, tt.requested, 5)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePlacementAuto(t *testing.T) {
	viewport := NewRect(0, 0, 1000, 1000)
	tests := []struct {
		name      string
		node      Rect
		reference Rect
		minimum   Rect
		want      Placement
	}{
		{
			name:      "tall node under a reference at the top",
			node:      NewRect(0, 0, 50, 200),
			reference: NewRect(450, 10, 100, 20),
			minimum:   viewport,
			want:      Bottom,
		},
		{
			name:      "reference at the bottom",
			node:      NewRect(0, 0, 50, 200),
			reference: NewRect(450, 900, 100, 20),
			minimum:   viewport,
			want:      Top,
		},
		{
			name:      "wide region prefers the horizontal axis",
			node:      NewRect(0, 0, 100, 60),
			reference: NewRect(100, 100, 50, 50),
			minimum:   NewRect(0, 0, 1000, 300),
			want:      Right,
		},
		{
			name:      "horizontal axis picks the larger side",
			node:      NewRect(0, 0, 100, 60),
			reference: NewRect(850, 100, 50, 50),
			minimum:   NewRect(0, 0, 1000, 300),
			want:      Left,
		},
		{
			name:      "ties resolve bottom, top, right, left",
			node:      NewRect(0, 0, 30, 50),
			reference: NewRect(40, 40, 20, 20),
			minimum:   NewRect(0, 0, 100, 100),
			want:      Right,
		},
		{
			name:      "nothing fits",
			node:      NewRect(0, 0, 200, 200),
			reference: NewRect(40, 40, 20, 20),
			minimum:   NewRect(0, 0, 100, 100),
			want:      Bottom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePlacement(tt.node, tt.reference, tt.minimum, Auto, 5)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlacementAndPosition(t *testing.T) {
	p, ok := ParsePlacement(" Left ")
	assert.True(t, ok)
	assert.Equal(t, Left, p)
	_, ok = ParsePlacement("middle")
	assert.False(t, ok)

	pos, ok := ParsePosition("END")
	assert.True(t, ok)
	assert.Equal(t, End, pos)
	_, ok = ParsePosition("")
	assert.False(t, ok)

	assert.Equal(t, Top, Bottom.Opposite())
	assert.Equal(t, Auto, Auto.Opposite())
}
