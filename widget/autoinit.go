package widget

import (
	"fmt"

	"github.com/chrisuehlinger/vibeui/dom"
)

// ToggleAttribute marks the triggers AutoInit binds widgets to.
const ToggleAttribute = "data-ui-toggle"

// AutoInit creates a hidden widget for every element of doc whose
// data-ui-toggle is "tooltip" or "popover", configured from its data-ui-*
// attributes. Elements with invalid options are skipped and reported in
// the returned error; the other widgets are still returned.
func AutoInit(doc *dom.Document) ([]Widget, error) {
	triggers := doc.QueryAllFunc(func(el *dom.Element) bool {
		switch el.GetAttribute(ToggleAttribute) {
		case "tooltip", "popover":
			return true
		}
		return false
	})

	var widgets []Widget
	var firstErr error
	for _, el := range triggers {
		w, err := fromDataset(el)
		if err != nil {
			tracer().Errorf("auto init %s: %v", describe(el), err)
			if firstErr == nil {
				firstErr = fmt.Errorf("auto init %s: %w", describe(el), err)
			}
			continue
		}
		widgets = append(widgets, w)
	}
	tracer().Debugf("auto init bound %d widgets", len(widgets))
	return widgets, firstErr
}

func fromDataset(el *dom.Element) (Widget, error) {
	if el.GetAttribute(ToggleAttribute) == "popover" {
		s, err := TooltipSettingsFromDataset(el, DefaultPopoverSettings())
		if err != nil {
			return nil, err
		}
		return NewPopover(el, s)
	}
	s, err := TooltipSettingsFromDataset(el, DefaultTooltipSettings())
	if err != nil {
		return nil, err
	}
	return NewTooltip(el, s)
}
