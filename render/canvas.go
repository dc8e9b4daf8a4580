// Package render paints the boxes of a laid-out document into an image.
// It is used by the playground window and by the CLI's PNG snapshots.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'vibeui.render'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.render")
}

// Canvas is an RGBA drawing surface. Drawing outside the bounds is clipped.
type Canvas struct {
	img    *image.RGBA
	Width  int
	Height int
}

var white = color.RGBA{255, 255, 255, 255}

// NewCanvas creates a white canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		Width:  width,
		Height: height,
	}
	c.Clear(white)
	return c
}

// Image returns the canvas pixels. The image shares memory with the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.RGBA) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			c.img.SetRGBA(x, y, col)
		}
	}
}

// GetPixel returns the color at x, y, or transparent outside the canvas.
func (c *Canvas) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.img.RGBAAt(x, y)
}

// SetPixel sets a single pixel.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.img.SetRGBA(x, y, col)
	}
}

// SetPixelBlend composites col over the pixel at x, y (Porter-Duff
// source over).
func (c *Canvas) SetPixelBlend(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	if col.A == 255 {
		c.img.SetRGBA(x, y, col)
		return
	}
	dst := c.img.RGBAAt(x, y)
	srcA := float64(col.A) / 255
	dstA := float64(dst.A) / 255
	outA := srcA + dstA*(1-srcA)
	if outA == 0 {
		c.img.SetRGBA(x, y, color.RGBA{})
		return
	}
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round((float64(s)*srcA + float64(d)*dstA*(1-srcA)) / outA))
	}
	c.img.SetRGBA(x, y, color.RGBA{
		R: mix(col.R, dst.R),
		G: mix(col.G, dst.G),
		B: mix(col.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	})
}

// FillRect fills a rectangle, blending when col is translucent.
func (c *Canvas) FillRect(x, y, width, height int, col color.RGBA) {
	x1, y1 := max(x, 0), max(y, 0)
	x2, y2 := min(x+width, c.Width), min(y+height, c.Height)
	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			c.SetPixelBlend(px, py, col)
		}
	}
}

// StrokeRect draws a rectangle outline of the given line width inside the
// rectangle's bounds.
func (c *Canvas) StrokeRect(x, y, width, height, lineWidth int, col color.RGBA) {
	if width <= 0 || height <= 0 || lineWidth <= 0 {
		return
	}
	lw := min(lineWidth, (width+1)/2, (height+1)/2)
	c.FillRect(x, y, width, lw, col)
	c.FillRect(x, y+height-lw, width, lw, col)
	c.FillRect(x, y+lw, lw, height-2*lw, col)
	c.FillRect(x+width-lw, y+lw, lw, height-2*lw, col)
}

// DrawLine draws a line from (x1, y1) to (x2, y2) using Bresenham's algorithm.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.RGBA) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		c.SetPixelBlend(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// TextHeight is the line height of DrawText.
const TextHeight = 13

// DrawText draws a single line of text with its top-left corner at x, y.
// It returns the advance width in pixels.
func (c *Canvas) DrawText(text string, x, y int, col color.RGBA) int {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
	return (d.Dot.X - fixed.I(x)).Round()
}

// MeasureText returns the width DrawText would use for text.
func MeasureText(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Round()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
