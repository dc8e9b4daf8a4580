package render

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/popper"
)

// Kind tells the painter what role a box plays in positioning.
type Kind int

const (
	Block Kind = iota
	Reference
	Floating
	Arrow
)

func (k Kind) String() string {
	switch k {
	case Reference:
		return "reference"
	case Floating:
		return "floating"
	case Arrow:
		return "arrow"
	}
	return "block"
}

// Box is one element's border box in viewport coordinates.
type Box struct {
	Element    *dom.Element
	Label      string
	X, Y       float64
	Width      float64
	Height     float64
	Kind       Kind
	Background color.RGBA
	// Layer orders painting: in-flow boxes first, then positioned boxes by
	// z-index.
	Layer  int
	ZIndex int
}

// Scene is the list of visible boxes of a document, in paint order.
type Scene struct {
	Width, Height float64
	Boxes         []Box
	index         map[*dom.Element]int
	links         []link
}

// link joins a positioned node to its reference.
type link struct {
	node, reference *dom.Element
}

// NewScene collects the boxes of the window's document body. Elements with
// display: none are skipped together with their subtree, as are empty
// boxes.
func NewScene(win *dom.Window) *Scene {
	s := &Scene{
		Width:  win.InnerWidth(),
		Height: win.InnerHeight(),
		index:  make(map[*dom.Element]int),
	}
	doc := win.Document()
	if doc == nil || doc.Body() == nil {
		return s
	}
	for _, child := range doc.Body().Children() {
		s.collect(child, 0)
	}
	sort.SliceStable(s.Boxes, func(i, j int) bool {
		if s.Boxes[i].Layer != s.Boxes[j].Layer {
			return s.Boxes[i].Layer < s.Boxes[j].Layer
		}
		return s.Boxes[i].ZIndex < s.Boxes[j].ZIndex
	})
	for i, b := range s.Boxes {
		s.index[b.Element] = i
	}
	tracer().Debugf("scene with %d boxes", len(s.Boxes))
	return s
}

func (s *Scene) collect(el *dom.Element, layer int) {
	if el.ComputedStyle("display") == "none" {
		return
	}
	if position := el.ComputedStyle("position"); position == "absolute" || position == "fixed" {
		layer = 1
	}
	r := el.GetBoundingClientRect()
	if r.Width > 0 && r.Height > 0 {
		b := Box{
			Element: el,
			Label:   Label(el),
			X:       r.X,
			Y:       r.Y,
			Width:   r.Width,
			Height:  r.Height,
			Layer:   layer,
		}
		if bg, ok := css.ParseColor(el.ComputedStyle("background-color")); ok {
			b.Background = bg
		}
		if z, err := strconv.Atoi(strings.TrimSpace(el.ComputedStyle("z-index"))); err == nil {
			b.ZIndex = z
		}
		s.Boxes = append(s.Boxes, b)
	}
	for _, child := range el.Children() {
		s.collect(child, layer)
	}
}

// Mark sets the kind of el's box. It reports false if el has no box.
func (s *Scene) Mark(el *dom.Element, kind Kind) bool {
	i, ok := s.index[el]
	if ok {
		s.Boxes[i].Kind = kind
	}
	return ok
}

// MarkPositioner marks the node, reference and arrow of p.
func (s *Scene) MarkPositioner(p *popper.Positioner) {
	if p == nil || p.IsDisposed() {
		return
	}
	s.Mark(p.Reference(), Reference)
	s.Mark(p.Node(), Floating)
	s.links = append(s.links, link{node: p.Node(), reference: p.Reference()})
	if arrow := p.Settings().Arrow; arrow != nil {
		s.Mark(arrow, Arrow)
	}
}

// Find returns the box of el.
func (s *Scene) Find(el *dom.Element) (Box, bool) {
	i, ok := s.index[el]
	if !ok {
		return Box{}, false
	}
	return s.Boxes[i], true
}

// Label names an element the way the scene labels its box: tag, id, the
// first class and the resolved placement.
func Label(el *dom.Element) string {
	var sb strings.Builder
	sb.WriteString(el.LocalName())
	if id := el.Id(); id != "" {
		sb.WriteString("#" + id)
	} else if classes := el.ClassList().Values(); len(classes) > 0 {
		sb.WriteString("." + classes[0])
	}
	if p := el.GetAttribute(popper.PlacementAttribute); p != "" {
		fmt.Fprintf(&sb, " (%s)", p)
	}
	return sb.String()
}
