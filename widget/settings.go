package widget

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/chrisuehlinger/vibeui/css"
	"github.com/chrisuehlinger/vibeui/dom"
	"github.com/chrisuehlinger/vibeui/popper"
)

// TooltipSettings configures a Tooltip or Popover.
type TooltipSettings struct {
	// Title is the tooltip text, or the popover header.
	Title string
	// Content is the popover body. Tooltips ignore it.
	Content string

	Placement  popper.Placement
	Position   popper.Position
	Spacing    float64
	MinContact *float64
	Fixed      bool
	UseGPU     bool

	// Container receives the floating markup. Nil means the body.
	Container *dom.Element
	// Boundary optionally clips the region the widget may occupy.
	Boundary *dom.Element
}

// DefaultTooltipSettings places tooltips above their trigger, centered,
// 2px away.
func DefaultTooltipSettings() TooltipSettings {
	return TooltipSettings{
		Placement: popper.Top,
		Position:  popper.Center,
		Spacing:   2,
		UseGPU:    true,
	}
}

// DefaultPopoverSettings places popovers right of their trigger, centered,
// 8px away.
func DefaultPopoverSettings() TooltipSettings {
	return TooltipSettings{
		Placement: popper.Right,
		Position:  popper.Center,
		Spacing:   8,
		UseGPU:    true,
	}
}

// ErrInvalidOption is wrapped by errors about unparsable data-ui-* values.
var ErrInvalidOption = errors.New("widget: invalid option")

// TooltipSettingsFromDataset overrides base with the data-ui-* attributes
// of el. The title falls back to el's title attribute.
func TooltipSettingsFromDataset(el *dom.Element, base TooltipSettings) (TooltipSettings, error) {
	s := base
	if v, ok := el.Dataset("uiTitle"); ok {
		s.Title = v
	} else if el.HasAttribute("title") {
		s.Title = el.GetAttribute("title")
	}
	if v, ok := el.Dataset("uiContent"); ok {
		s.Content = v
	}
	if v, ok := el.Dataset("uiPlacement"); ok {
		p, ok := popper.ParsePlacement(v)
		if !ok {
			return base, invalid("placement", v)
		}
		s.Placement = p
	}
	if v, ok := el.Dataset("uiPosition"); ok {
		p, ok := popper.ParsePosition(v)
		if !ok {
			return base, invalid("position", v)
		}
		s.Position = p
	}
	if v, ok := el.Dataset("uiSpacing"); ok {
		n, ok := css.ParseLength(v, 0)
		if !ok {
			return base, invalid("spacing", v)
		}
		s.Spacing = n
	}
	if v, ok := el.Dataset("uiMinContact"); ok {
		n, ok := css.ParseLength(v, 0)
		if !ok {
			return base, invalid("min-contact", v)
		}
		s.MinContact = popper.MinContact(n)
	}
	var err error
	if s.Fixed, err = datasetBool(el, "uiFixed", "fixed", s.Fixed); err != nil {
		return base, err
	}
	if s.UseGPU, err = datasetBool(el, "uiUseGpu", "use-gpu", s.UseGPU); err != nil {
		return base, err
	}
	return s, nil
}

// datasetBool reads a boolean data attribute. A present but empty
// attribute counts as true.
func datasetBool(el *dom.Element, key, name string, fallback bool) (bool, error) {
	v, ok := el.Dataset(key)
	if !ok {
		return fallback, nil
	}
	if v == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, invalid(name, v)
	}
	return b, nil
}

func invalid(name, value string) error {
	return fmt.Errorf("%w: data-ui-%s=%q", ErrInvalidOption, name, value)
}

// positionerSettings converts s into engine settings anchored at trigger.
func (s TooltipSettings) positionerSettings(trigger, arrow *dom.Element) popper.Settings {
	return popper.Settings{
		Reference:  trigger,
		Container:  s.Boundary,
		Placement:  s.Placement,
		Position:   s.Position,
		Fixed:      s.Fixed,
		Spacing:    s.Spacing,
		MinContact: s.MinContact,
		UseGPU:     s.UseGPU,
		Arrow:      arrow,
	}
}
