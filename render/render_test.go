package render

import (
	"image/color"
	"testing"

	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/layout"
	"github.com/chrisuehlinger/vibeui/popper"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNewCanvas(t *testing.T) {
	canvas := NewCanvas(100, 50)

	if canvas.Width != 100 || canvas.Height != 50 {
		t.Errorf("Expected 100x50, got %dx%d", canvas.Width, canvas.Height)
	}
	if b := canvas.Image().Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("Expected image bounds 100x50, got %v", b)
	}
	for _, p := range [][2]int{{0, 0}, {99, 49}, {50, 25}} {
		if got := canvas.GetPixel(p[0], p[1]); got != white {
			t.Errorf("Pixel %v = %v, expected white", p, got)
		}
	}
	if got := canvas.GetPixel(100, 0); got != (color.RGBA{}) {
		t.Errorf("Expected transparent outside the canvas, got %v", got)
	}
}

func TestFillRect(t *testing.T) {
	canvas := NewCanvas(20, 20)
	blue := color.RGBA{0, 0, 255, 255}

	canvas.FillRect(-5, 10, 10, 20, blue)

	if got := canvas.GetPixel(0, 10); got != blue {
		t.Errorf("Expected clipped fill at (0,10), got %v", got)
	}
	if got := canvas.GetPixel(4, 19); got != blue {
		t.Errorf("Expected fill at (4,19), got %v", got)
	}
	if got := canvas.GetPixel(5, 10); got != white {
		t.Errorf("Expected white right of the fill, got %v", got)
	}
	if got := canvas.GetPixel(0, 9); got != white {
		t.Errorf("Expected white above the fill, got %v", got)
	}
}

func TestSetPixelBlend(t *testing.T) {
	canvas := NewCanvas(1, 1)
	canvas.SetPixelBlend(0, 0, color.RGBA{0, 0, 0, 128})

	got := canvas.GetPixel(0, 0)
	if got.A != 255 || got.R != 127 || got.R != got.G || got.G != got.B {
		t.Errorf("Expected half gray, got %v", got)
	}

	canvas.SetPixelBlend(5, 5, color.RGBA{0, 0, 0, 255}) // clipped
}

func TestStrokeRect(t *testing.T) {
	canvas := NewCanvas(10, 10)
	red := color.RGBA{255, 0, 0, 255}
	canvas.StrokeRect(1, 1, 8, 8, 1, red)

	for _, p := range [][2]int{{1, 1}, {8, 1}, {1, 8}, {8, 8}, {4, 1}, {1, 4}} {
		if got := canvas.GetPixel(p[0], p[1]); got != red {
			t.Errorf("Expected outline at %v, got %v", p, got)
		}
	}
	if got := canvas.GetPixel(4, 4); got != white {
		t.Errorf("Expected white inside the outline, got %v", got)
	}
}

func TestDrawLineAndText(t *testing.T) {
	canvas := NewCanvas(40, 20)
	black := color.RGBA{0, 0, 0, 255}

	canvas.DrawLine(0, 0, 9, 9, black)
	for i := 0; i < 10; i++ {
		if got := canvas.GetPixel(i, i); got != black {
			t.Errorf("Expected diagonal pixel (%d,%d), got %v", i, i, got)
		}
	}

	canvas = NewCanvas(40, 20)
	width := canvas.DrawText("Hi", 2, 2, black)
	if width != 14 || MeasureText("Hi") != 14 {
		t.Errorf("Expected 7px per glyph, got %d / %d", width, MeasureText("Hi"))
	}
	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if canvas.GetPixel(x, y) != white {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("Expected DrawText to ink some pixels")
	}
}

func load(t *testing.T, markup string) *dom.Window {
	t.Helper()
	win := dom.NewWindow(400, 300)
	doc, err := win.LoadHTML(markup)
	if err != nil {
		t.Fatalf("LoadHTML failed: %v", err)
	}
	layout.Attach(doc)
	return win
}

func TestSceneOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vibeui.render")
	defer teardown()

	win := load(t, `<html><body style="margin: 0">
		<div id="top" style="position: absolute; z-index: 5; width: 10px; height: 10px"></div>
		<div id="abs" style="position: absolute; width: 10px; height: 10px"></div>
		<div id="flow" class="a b" style="height: 20px; background-color: #ff0000"></div>
		<div id="hidden" style="display: none"><div style="height: 10px"></div></div>
		<div id="empty"></div>
	</body></html>`)

	scene := NewScene(win)
	var ids []string
	for _, b := range scene.Boxes {
		ids = append(ids, b.Element.Id())
	}
	if len(ids) != 3 || ids[0] != "flow" || ids[1] != "abs" || ids[2] != "top" {
		t.Fatalf("Expected paint order [flow abs top], got %v", ids)
	}

	flow, ok := scene.Find(win.Document().GetElementById("flow"))
	if !ok {
		t.Fatal("Expected a box for #flow")
	}
	if flow.Background != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red background, got %v", flow.Background)
	}
	if flow.Width != 400 || flow.Height != 20 || flow.Kind != Block {
		t.Errorf("Unexpected box %+v", flow)
	}
	if flow.Label != "div#flow" {
		t.Errorf("Expected label div#flow, got %q", flow.Label)
	}
	if _, ok := scene.Find(win.Document().GetElementById("hidden")); ok {
		t.Error("Expected display: none to be skipped")
	}
}

const positionedPage = `<html><body style="margin: 0">
	<div id="ref" style="margin-left: 50px; width: 100px; height: 20px"></div>
	<div id="pop" style="width: 40px; height: 30px"></div>
</body></html>`

func TestPaintPositioner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vibeui.render")
	defer teardown()

	win := load(t, positionedPage)
	doc := win.Document()
	s := popper.DefaultSettings()
	s.Reference = doc.GetElementById("ref")
	s.Placement = popper.Bottom
	p, err := popper.New(doc.GetElementById("pop"), s)
	if err != nil {
		t.Fatalf("popper.New failed: %v", err)
	}
	defer p.Dispose()

	scene := NewScene(win)
	scene.MarkPositioner(p)

	pop, _ := scene.Find(p.Node())
	if pop.Kind != Floating || pop.X != 80 || pop.Y != 25 {
		t.Errorf("Expected floating box at (80,25), got %+v", pop)
	}
	if pop.Label != "div#pop (bottom)" {
		t.Errorf("Expected the placement in the label, got %q", pop.Label)
	}
	if ref, _ := scene.Find(p.Reference()); ref.Kind != Reference {
		t.Errorf("Expected reference kind, got %v", ref.Kind)
	}

	list := BuildDisplayList(scene)
	lines := 0
	for _, cmd := range list {
		if _, ok := cmd.(*LineCommand); ok {
			lines++
		}
	}
	if lines != 1 {
		t.Errorf("Expected one connector line, got %d", lines)
	}

	canvas := Paint(scene)
	if canvas.Width != 400 || canvas.Height != 300 {
		t.Errorf("Expected a 400x300 canvas, got %dx%d", canvas.Width, canvas.Height)
	}
	if got, want := canvas.GetPixel(85, 40), (color.RGBA{252, 165, 55, 255}); got != want {
		t.Errorf("Expected floating fill %v, got %v", want, got)
	}
	if got, want := canvas.GetPixel(60, 10), (color.RGBA{211, 226, 252, 255}); got != want {
		t.Errorf("Expected reference fill %v, got %v", want, got)
	}
	if got := canvas.GetPixel(80, 25); got != Palette[Floating].Stroke {
		t.Errorf("Expected floating outline at the corner, got %v", got)
	}
	if got := canvas.GetPixel(300, 200); got != white {
		t.Errorf("Expected white background, got %v", got)
	}
}
