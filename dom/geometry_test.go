package dom

import (
	"testing"
)

func TestNewDOMRect(t *testing.T) {
	rect := NewDOMRect(10, 20, 100, 50)
	if rect.Top() != 20 || rect.Left() != 10 || rect.Right() != 110 || rect.Bottom() != 70 {
		t.Errorf("Unexpected edges for %v", rect)
	}
	moved := rect.Translate(5, -5)
	if moved.X != 15 || moved.Y != 15 || moved.Width != 100 {
		t.Errorf("Expected translated rect (15, 15, 100, 50), got %v", moved)
	}
}

func TestDOMRect_NegativeSize(t *testing.T) {
	rect := NewDOMRect(100, 100, -50, -30)
	if rect.Left() != 50 || rect.Right() != 100 {
		t.Errorf("Expected left 50 right 100, got %v %v", rect.Left(), rect.Right())
	}
	if rect.Top() != 70 || rect.Bottom() != 100 {
		t.Errorf("Expected top 70 bottom 100, got %v %v", rect.Top(), rect.Bottom())
	}
}

// attach creates an element under parent with the given page geometry.
func attach(t *testing.T, parent *Element, tag string, x, y, w, h float64) *Element {
	t.Helper()
	el := parent.OwnerDocument().CreateElement(tag)
	if _, err := parent.AppendChild(el.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	el.SetGeometry(&ElementGeometry{X: x, Y: y, Width: w, Height: h})
	return el
}

func TestGetBoundingClientRect(t *testing.T) {
	w := NewWindow(800, 600)
	body := w.Document().Body()

	el := w.Document().CreateElement("div")
	if rect := el.GetBoundingClientRect(); rect.Width != 0 || rect.X != 0 {
		t.Errorf("Expected zero rect without geometry, got %v", rect)
	}

	el = attach(t, body, "div", 50, 100, 200, 150)
	rect := el.GetBoundingClientRect()
	if rect.X != 50 || rect.Y != 100 || rect.Width != 200 || rect.Height != 150 {
		t.Errorf("Expected rect (50, 100, 200, 150), got %v", rect)
	}

	el.Style().SetProperty("transform", "translate3d(10px, 20px, 0)")
	rect = el.GetBoundingClientRect()
	if rect.X != 60 || rect.Y != 120 {
		t.Errorf("Expected transform to move the rect to (60, 120), got %v", rect)
	}

	el.Remove()
	if rect := el.GetBoundingClientRect(); rect.X != 0 || rect.Width != 0 {
		t.Errorf("Expected detached element to report a zero rect, got %v", rect)
	}
}

func TestGetBoundingClientRectScrolling(t *testing.T) {
	w := NewWindow(800, 600)
	doc := w.Document()
	doc.DocumentElement().SetGeometry(&ElementGeometry{Width: 800, Height: 2000})
	body := doc.Body()

	scroller := attach(t, body, "div", 0, 0, 300, 300)
	scroller.Style().SetProperty("overflow", "auto")
	inner := attach(t, scroller, "div", 10, 400, 50, 50)

	w.ScrollTo(0, 100)
	scroller.ScrollTo(0, 30)

	rect := inner.GetBoundingClientRect()
	if rect.Y != 400-30-100 {
		t.Errorf("Expected y %v, got %v", 400-30-100, rect.Y)
	}

	fixed := attach(t, body, "div", 0, 0, 10, 10)
	fixed.Style().SetProperty("position", "fixed")
	if rect := fixed.GetBoundingClientRect(); rect.Y != 0 {
		t.Errorf("Expected fixed element to ignore window scroll, got %v", rect.Y)
	}
}

func TestElementScrollTo(t *testing.T) {
	doc := NewWindow(800, 600).Document()
	el := attach(t, doc.Body(), "div", 0, 0, 100, 100)
	fired := 0
	el.AddEventListener("scroll", func(ev *Event) {
		fired++
		if ev.Target != el {
			t.Errorf("Expected event target to be the element")
		}
	})

	el.ScrollTo(-5, 40)
	if el.ScrollLeft() != 0 || el.ScrollTop() != 40 {
		t.Errorf("Expected scroll (0, 40), got (%v, %v)", el.ScrollLeft(), el.ScrollTop())
	}
	el.ScrollTo(0, 40)
	if fired != 1 {
		t.Errorf("Expected one scroll event, got %d", fired)
	}
}
