package widget

import (
	"github.com/chrisuehlinger/vibeui/dom"
)

// Popover is a tooltip with a header and a body:
//
//	div.popover
//	├── div.popover-arrow
//	├── div.popover-header   (only with a title)
//	└── div.popover-body
type Popover struct {
	*floating
}

var _ Widget = (*Popover)(nil)

// NewPopover binds a hidden popover to trigger.
func NewPopover(trigger *dom.Element, settings TooltipSettings) (*Popover, error) {
	f, err := newFloating("popover", trigger, settings, popoverMarkup)
	if err != nil {
		return nil, err
	}
	return &Popover{floating: f}, nil
}

func popoverMarkup(doc *dom.Document, s TooltipSettings) (tip, arrow *dom.Element) {
	tip = div(doc, "popover")
	arrow = div(doc, "popover-arrow")
	_, _ = tip.AppendChild(arrow.AsNode())
	if s.Title != "" {
		header := div(doc, "popover-header")
		header.SetTextContent(s.Title)
		_, _ = tip.AppendChild(header.AsNode())
	}
	body := div(doc, "popover-body")
	body.SetTextContent(s.Content)
	_, _ = tip.AppendChild(body.AsNode())
	return tip, arrow
}
