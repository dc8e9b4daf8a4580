package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/vibeui/popper"
	"github.com/chrisuehlinger/vibeui/render"
)

// Opener loads a fresh session, for the initial page and for reloads.
type Opener func() (*Session, error)

// Playground shows a session's page next to controls for the selected
// widget's positioning settings.
type Playground struct {
	app    fyne.App
	window fyne.Window
	open   Opener

	session  *Session
	selected int

	page      *canvas.Image
	widgets   *widget.Select
	placement *widget.Select
	position  *widget.Select
	spacing   *widget.Slider
	gpu       *widget.Check
	toggleBtn *widget.Button
	scroll    *widget.Slider
	status    *widget.Label

	// set while controls are synced from the session, so that their
	// change handlers do not write back
	syncing bool
}

// NewPlayground creates the playground window. The page is loaded by Run.
func NewPlayground(title string, open Opener) *Playground {
	a := app.New()
	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(1280, 800))

	p := &Playground{app: a, window: w, open: open}
	p.setupUI()
	p.setupKeyboardShortcuts()
	return p
}

func (p *Playground) setupUI() {
	p.page = canvas.NewImageFromImage(nil)
	p.page.FillMode = canvas.ImageFillOriginal
	p.page.ScaleMode = canvas.ImageScalePixels

	p.widgets = widget.NewSelect(nil, func(string) {
		if p.syncing {
			return
		}
		p.selected = p.widgets.SelectedIndex()
		p.syncControls()
	})

	p.placement = widget.NewSelect(placements(), func(string) { p.configure() })
	p.position = widget.NewSelect(positions(), func(string) { p.configure() })

	p.spacing = widget.NewSlider(0, 32)
	p.spacing.Step = 1
	p.spacing.OnChangeEnded = func(float64) { p.configure() }

	p.gpu = widget.NewCheck("Transform", func(bool) { p.configure() })

	p.toggleBtn = widget.NewButtonWithIcon("Show", theme.VisibilityIcon(), p.toggle)

	p.scroll = widget.NewSlider(0, 0)
	p.scroll.Orientation = widget.Vertical
	p.scroll.OnChanged = func(y float64) {
		if p.syncing || p.session == nil {
			return
		}
		// vertical sliders grow upwards
		p.session.ScrollTo(p.session.Window.ScrollX(), p.scroll.Max-y)
		p.redraw()
	}

	p.status = widget.NewLabel("")

	reloadBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), p.reload)
	controls := container.NewVBox(
		widget.NewLabel("Widget"), p.widgets,
		widget.NewLabel("Placement"), p.placement,
		widget.NewLabel("Position"), p.position,
		widget.NewLabel("Spacing"), p.spacing,
		p.gpu,
		container.NewHBox(p.toggleBtn, reloadBtn),
	)

	content := container.NewBorder(nil, p.status, controls, p.scroll,
		container.NewScroll(p.page))
	p.window.SetContent(content)
}

func (p *Playground) setupKeyboardShortcuts() {
	// Ctrl+R: Reload
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.reload()
	})

	// Ctrl+T: Toggle the selected widget
	p.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyT,
		Modifier: fyne.KeyModifierControl,
	}, func(_ fyne.Shortcut) {
		p.toggle()
	})
}

// Run loads the page and blocks until the window is closed.
func (p *Playground) Run() {
	p.reload()
	p.window.ShowAndRun()
	if p.session != nil {
		p.session.Close()
	}
}

func (p *Playground) reload() {
	s, err := p.open()
	if err != nil {
		tracer().Errorf("loading page: %v", err)
		p.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	if p.session != nil {
		p.session.Close()
	}
	p.session = s
	p.selected = 0
	if s.URL != "" {
		p.window.SetTitle(s.URL)
	}

	labels := make([]string, len(s.Widgets))
	for i, w := range s.Widgets {
		labels[i] = render.Label(w.Trigger())
	}
	p.syncing = true
	p.widgets.Options = labels
	p.widgets.ClearSelected()
	if len(labels) > 0 {
		p.widgets.SetSelectedIndex(0)
	}
	p.syncing = false
	p.syncControls()
}

// syncControls shows the selected widget's settings in the controls.
func (p *Playground) syncControls() {
	if p.session == nil {
		return
	}
	p.syncing = true
	defer func() {
		p.syncing = false
		p.redraw()
	}()

	win := p.session.Window
	p.scroll.Max = max(0, win.DocumentHeight()-win.ClientHeight())
	p.scroll.SetValue(p.scroll.Max - win.ScrollY())

	opts, err := p.session.Options(p.selected)
	if err != nil {
		p.setControlsEnabled(false)
		return
	}
	p.setControlsEnabled(true)
	p.placement.SetSelected(string(opts.Placement))
	p.position.SetSelected(string(opts.Position))
	p.spacing.SetValue(opts.Spacing)
	p.gpu.SetChecked(opts.UseGPU)
}

func (p *Playground) setControlsEnabled(enabled bool) {
	for _, w := range []fyne.Disableable{p.placement, p.position, p.gpu, p.toggleBtn} {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

// configure applies the controls to the selected widget.
func (p *Playground) configure() {
	if p.syncing || p.session == nil {
		return
	}
	placement, ok := popper.ParsePlacement(p.placement.Selected)
	if !ok {
		return
	}
	position, ok := popper.ParsePosition(p.position.Selected)
	if !ok {
		return
	}
	err := p.session.Configure(p.selected, Options{
		Placement: placement,
		Position:  position,
		Spacing:   p.spacing.Value,
		UseGPU:    p.gpu.Checked,
	})
	if err != nil {
		tracer().Errorf("configure widget %d: %v", p.selected, err)
		p.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	p.redraw()
}

func (p *Playground) toggle() {
	if p.session == nil {
		return
	}
	if err := p.session.Toggle(p.selected); err != nil {
		p.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	p.redraw()
}

// redraw repaints the page and updates the status line.
func (p *Playground) redraw() {
	if p.session == nil {
		return
	}
	img := p.session.Paint().Image()
	p.page.Image = img
	p.page.SetMinSize(fyne.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	p.page.Refresh()

	p.toggleBtn.SetText("Show")
	p.status.SetText(Describe(p.session, p.selected))
	if p.selected < len(p.session.Widgets) && p.session.Widgets[p.selected].IsShown() {
		p.toggleBtn.SetText("Hide")
	}
}

func placements() []string {
	return names(popper.Top, popper.Right, popper.Bottom, popper.Left, popper.Auto)
}

func positions() []string {
	return names(popper.Start, popper.Center, popper.End, popper.AutoPosition)
}

func names[T ~string](values ...T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
