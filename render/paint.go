package render

import (
	"image/color"
	"math"
)

// DisplayCommand is a single painting operation.
type DisplayCommand interface {
	Execute(c *Canvas)
}

// SolidColorCommand fills a rectangle.
type SolidColorCommand struct {
	Color               color.RGBA
	X, Y, Width, Height int
}

// Execute paints the rectangle.
func (cmd *SolidColorCommand) Execute(c *Canvas) {
	c.FillRect(cmd.X, cmd.Y, cmd.Width, cmd.Height, cmd.Color)
}

// BorderCommand outlines a rectangle.
type BorderCommand struct {
	Color               color.RGBA
	X, Y, Width, Height int
	LineWidth           int
}

// Execute paints the outline.
func (cmd *BorderCommand) Execute(c *Canvas) {
	c.StrokeRect(cmd.X, cmd.Y, cmd.Width, cmd.Height, cmd.LineWidth, cmd.Color)
}

// TextCommand draws a label.
type TextCommand struct {
	Color color.RGBA
	Text  string
	X, Y  int
}

// Execute draws the text.
func (cmd *TextCommand) Execute(c *Canvas) {
	c.DrawText(cmd.Text, cmd.X, cmd.Y, cmd.Color)
}

// LineCommand draws a straight line.
type LineCommand struct {
	Color          color.RGBA
	X1, Y1, X2, Y2 int
}

// Execute draws the line.
func (cmd *LineCommand) Execute(c *Canvas) {
	c.DrawLine(cmd.X1, cmd.Y1, cmd.X2, cmd.Y2, cmd.Color)
}

// Style holds the colors used for each kind of box.
type Style struct {
	Fill   color.RGBA
	Stroke color.RGBA
	Text   color.RGBA
}

// Palette maps box kinds to their colors.
var Palette = map[Kind]Style{
	Block:     {Fill: color.RGBA{0, 0, 0, 0}, Stroke: color.RGBA{190, 190, 190, 255}, Text: color.RGBA{120, 120, 120, 255}},
	Reference: {Fill: color.RGBA{66, 133, 244, 60}, Stroke: color.RGBA{66, 133, 244, 255}, Text: color.RGBA{20, 60, 140, 255}},
	Floating:  {Fill: color.RGBA{251, 140, 0, 200}, Stroke: color.RGBA{200, 90, 0, 255}, Text: color.RGBA{0, 0, 0, 255}},
	Arrow:     {Fill: color.RGBA{120, 50, 0, 255}, Stroke: color.RGBA{120, 50, 0, 255}},
}

// BuildDisplayList turns the scene into painting commands. Each box gets
// its background, its kind's fill and outline and, when there is room, its
// label. Every marked positioner adds a line from the center of its node
// to the center of its reference.
func BuildDisplayList(s *Scene) []DisplayCommand {
	var list []DisplayCommand
	for _, b := range s.Boxes {
		x, y := int(math.Floor(b.X)), int(math.Floor(b.Y))
		w, h := int(math.Round(b.Width)), int(math.Round(b.Height))
		style := Palette[b.Kind]

		if b.Background.A > 0 {
			list = append(list, &SolidColorCommand{Color: b.Background, X: x, Y: y, Width: w, Height: h})
		}
		if style.Fill.A > 0 {
			list = append(list, &SolidColorCommand{Color: style.Fill, X: x, Y: y, Width: w, Height: h})
		}
		list = append(list, &BorderCommand{Color: style.Stroke, X: x, Y: y, Width: w, Height: h, LineWidth: 1})
		if b.Kind != Arrow && h >= TextHeight+4 && MeasureText(b.Label)+4 <= w {
			list = append(list, &TextCommand{Color: style.Text, Text: b.Label, X: x + 2, Y: y + 2})
		}
	}
	for _, l := range s.links {
		node, ok1 := s.Find(l.node)
		ref, ok2 := s.Find(l.reference)
		if !ok1 || !ok2 {
			continue
		}
		nx, ny := center(node)
		rx, ry := center(ref)
		list = append(list, &LineCommand{Color: Palette[Floating].Stroke, X1: nx, Y1: ny, X2: rx, Y2: ry})
	}
	return list
}

func center(b Box) (int, int) {
	return int(math.Floor(b.X + b.Width/2)), int(math.Floor(b.Y + b.Height/2))
}

// Paint renders the scene onto a new white canvas the size of the
// scene's viewport.
func Paint(s *Scene) *Canvas {
	c := NewCanvas(int(math.Ceil(s.Width)), int(math.Ceil(s.Height)))
	list := BuildDisplayList(s)
	for _, cmd := range list {
		cmd.Execute(c)
	}
	tracer().Debugf("painted %d commands onto %dx%d", len(list), c.Width, c.Height)
	return c
}
