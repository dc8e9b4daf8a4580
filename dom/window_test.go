package dom

import (
	"testing"
)

func TestWindowScrollClamp(t *testing.T) {
	w := NewWindow(800, 600)

	// Without layout only negative values are clamped
	w.ScrollTo(-10, 5000)
	if w.ScrollX() != 0 || w.ScrollY() != 5000 {
		t.Errorf("Expected (0, 5000), got (%v, %v)", w.ScrollX(), w.ScrollY())
	}

	w.Document().DocumentElement().SetGeometry(&ElementGeometry{Width: 800, Height: 1000})
	w.ScrollTo(0, 5000)
	if w.ScrollY() != 400 {
		t.Errorf("Expected scroll clamped to 400, got %v", w.ScrollY())
	}
}

func TestWindowClientSize(t *testing.T) {
	w := NewWindow(800, 600)
	w.ScrollbarSize = 15
	w.Document().DocumentElement().SetGeometry(&ElementGeometry{Width: 800, Height: 600})
	if w.ClientWidth() != 800 || w.ClientHeight() != 600 {
		t.Errorf("Expected no scrollbars, got %vx%v", w.ClientWidth(), w.ClientHeight())
	}

	w.Document().DocumentElement().SetGeometry(&ElementGeometry{Width: 800, Height: 1200})
	if w.ClientWidth() != 785 {
		t.Errorf("Expected vertical scrollbar to take 15px, got %v", w.ClientWidth())
	}
	if w.ClientHeight() != 600 {
		t.Errorf("Expected no horizontal scrollbar, got %v", w.ClientHeight())
	}
}

func TestWindowEvents(t *testing.T) {
	w := NewWindow(800, 600)
	var got []string
	id := w.AddEventListener("resize", func(ev *Event) { got = append(got, ev.Type) })
	w.AddEventListener("scroll", func(ev *Event) { got = append(got, ev.Type) })

	w.ResizeTo(1024, 768)
	w.ResizeTo(1024, 768) // unchanged, no event
	w.ScrollTo(0, 10)

	if len(got) != 2 || got[0] != "resize" || got[1] != "scroll" {
		t.Errorf("Expected [resize scroll], got %v", got)
	}
	if !w.Document().NeedsLayout() {
		t.Error("Expected resize to invalidate layout")
	}

	w.RemoveEventListener("resize", id)
	if w.ListenerCount("resize") != 0 {
		t.Errorf("Expected no resize listeners, got %d", w.ListenerCount("resize"))
	}
}

func TestAnimationFrames(t *testing.T) {
	w := NewWindow(800, 600)
	var order []int
	w.RequestAnimationFrame(func(ts float64) { order = append(order, 1) })
	cancelled := w.RequestAnimationFrame(func(ts float64) { order = append(order, 2) })
	w.RequestAnimationFrame(func(ts float64) {
		order = append(order, 3)
		w.RequestAnimationFrame(func(ts float64) { order = append(order, 4) })
	})
	w.CancelAnimationFrame(cancelled)

	if n := w.RunAnimationFrames(16); n != 2 {
		t.Errorf("Expected 2 callbacks to run, got %d", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("Expected [1 3], got %v", order)
	}
	if w.PendingFrames() != 1 {
		t.Errorf("Expected the nested request to wait for the next frame, got %d pending", w.PendingFrames())
	}
	w.RunAnimationFrames(32)
	if len(order) != 3 || order[2] != 4 {
		t.Errorf("Expected [1 3 4], got %v", order)
	}
}

type countingLayouter struct {
	runs int
}

func (c *countingLayouter) Layout(doc *Document) {
	c.runs++
	doc.Body().SetGeometry(&ElementGeometry{Width: 42})
}

func TestLazyLayout(t *testing.T) {
	w := NewWindow(800, 600)
	doc := w.Document()
	l := &countingLayouter{}
	doc.SetLayouter(l)

	if doc.Body().OffsetWidth() != 42 {
		t.Errorf("Expected layouter geometry, got %v", doc.Body().OffsetWidth())
	}
	doc.Body().OffsetWidth()
	if l.runs != 1 {
		t.Errorf("Expected one layout run, got %d", l.runs)
	}

	doc.Body().Style().SetProperty("width", "10px")
	doc.Body().OffsetWidth()
	if l.runs != 2 {
		t.Errorf("Expected style change to trigger relayout, got %d runs", l.runs)
	}
}
