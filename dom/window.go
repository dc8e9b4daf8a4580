package dom

import (
	"math"
	"sync"
)

// Default viewport size used by ParseHTML.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// frameRequest is a pending animation frame callback.
type frameRequest struct {
	id       int
	callback func(timestamp float64)
}

// Window is the browsing context hosting a document: it owns the viewport
// size, the document scroll position, window-level events and the animation
// frame queue.
type Window struct {
	document *Document

	innerWidth, innerHeight float64
	scrollX, scrollY        float64

	// ScrollbarSize is the thickness of classic scrollbars. Zero models
	// overlay scrollbars, which take no room from the viewport.
	ScrollbarSize float64

	events *EventTarget

	frames      []frameRequest
	nextFrameID int
	mu          sync.Mutex
}

// NewWindow creates a window of the given viewport size with an empty
// html/head/body document.
func NewWindow(width, height float64) *Window {
	w := &Window{
		innerWidth:  width,
		innerHeight: height,
		events:      NewEventTarget(),
	}
	doc := NewDocument()
	w.adopt(doc)
	root := doc.CreateElement("html")
	_, _ = root.AppendChild(doc.CreateElement("head").AsNode())
	_, _ = root.AppendChild(doc.CreateElement("body").AsNode())
	_, _ = doc.AppendChild(root.AsNode())
	return w
}

func (w *Window) adopt(doc *Document) {
	doc.documentData.window = w
	w.document = doc
	w.scrollX, w.scrollY = 0, 0
}

// Document returns the window's document.
func (w *Window) Document() *Document {
	return w.document
}

// InnerWidth returns the viewport width including scrollbars.
func (w *Window) InnerWidth() float64 {
	return w.innerWidth
}

// InnerHeight returns the viewport height including scrollbars.
func (w *Window) InnerHeight() float64 {
	return w.innerHeight
}

// ScrollX returns the horizontal document scroll position.
func (w *Window) ScrollX() float64 {
	return w.scrollX
}

// ScrollY returns the vertical document scroll position.
func (w *Window) ScrollY() float64 {
	return w.scrollY
}

// DocumentWidth returns the scrollable width of the document content.
func (w *Window) DocumentWidth() float64 {
	root := w.document.DocumentElement()
	if root == nil {
		return 0
	}
	geom := root.Geometry()
	if geom == nil {
		return 0
	}
	return math.Max(geom.Width, geom.ScrollWidth)
}

// DocumentHeight returns the scrollable height of the document content.
func (w *Window) DocumentHeight() float64 {
	root := w.document.DocumentElement()
	if root == nil {
		return 0
	}
	geom := root.Geometry()
	if geom == nil {
		return 0
	}
	return math.Max(geom.Height, geom.ScrollHeight)
}

// ClientWidth returns the viewport width minus a visible vertical scrollbar.
func (w *Window) ClientWidth() float64 {
	if w.ScrollbarSize > 0 && w.DocumentHeight() > w.innerHeight {
		return w.innerWidth - w.ScrollbarSize
	}
	return w.innerWidth
}

// ClientHeight returns the viewport height minus a visible horizontal scrollbar.
func (w *Window) ClientHeight() float64 {
	if w.ScrollbarSize > 0 && w.DocumentWidth() > w.innerWidth {
		return w.innerHeight - w.ScrollbarSize
	}
	return w.innerHeight
}

// ScrollTo scrolls the document and dispatches a "scroll" event if the
// position changed. Positions are clamped to the scrollable range when the
// document has been laid out, and to zero otherwise.
func (w *Window) ScrollTo(x, y float64) {
	x, y = math.Max(x, 0), math.Max(y, 0)
	if root := w.document.DocumentElement(); root != nil && root.Geometry() != nil {
		x = math.Min(x, math.Max(w.DocumentWidth()-w.ClientWidth(), 0))
		y = math.Min(y, math.Max(w.DocumentHeight()-w.ClientHeight(), 0))
	}
	if x == w.scrollX && y == w.scrollY {
		return
	}
	w.scrollX, w.scrollY = x, y
	w.DispatchEvent(NewEvent("scroll"))
}

// ResizeTo changes the viewport size, invalidates layout and dispatches a
// "resize" event.
func (w *Window) ResizeTo(width, height float64) {
	if width == w.innerWidth && height == w.innerHeight {
		return
	}
	w.innerWidth, w.innerHeight = width, height
	w.document.Invalidate()
	w.DispatchEvent(NewEvent("resize"))
}

// AddEventListener registers a window-level listener.
func (w *Window) AddEventListener(eventType string, fn EventListener) ListenerID {
	return w.events.AddEventListener(eventType, fn)
}

// RemoveEventListener removes a window-level listener by handle.
func (w *Window) RemoveEventListener(eventType string, id ListenerID) bool {
	return w.events.RemoveEventListener(eventType, id)
}

// DispatchEvent delivers ev to the window's listeners.
func (w *Window) DispatchEvent(ev *Event) {
	ev.Target = w
	w.events.DispatchEvent(ev)
}

// ListenerCount returns the number of window listeners for eventType.
func (w *Window) ListenerCount(eventType string) int {
	return w.events.ListenerCount(eventType)
}

// RequestAnimationFrame queues callback for the next frame and returns a
// non-zero handle.
func (w *Window) RequestAnimationFrame(callback func(timestamp float64)) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextFrameID++
	w.frames = append(w.frames, frameRequest{id: w.nextFrameID, callback: callback})
	return w.nextFrameID
}

// CancelAnimationFrame drops a queued frame callback.
func (w *Window) CancelAnimationFrame(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, f := range w.frames {
		if f.id == id {
			w.frames = append(w.frames[:i:i], w.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames returns the number of queued frame callbacks.
func (w *Window) PendingFrames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.frames)
}

// RunAnimationFrames runs every callback queued before the call, in order,
// and returns how many ran. Callbacks requested while running wait for the
// next frame.
func (w *Window) RunAnimationFrames(timestamp float64) int {
	w.mu.Lock()
	batch := w.frames
	w.frames = nil
	w.mu.Unlock()

	for _, f := range batch {
		f.callback(timestamp)
	}
	return len(batch)
}
