package widget

import (
	"github.com/chrisuehlinger/vibeui/dom"
)

// Tooltip shows a short text next to its trigger:
//
//	div.tooltip
//	├── div.tooltip-arrow
//	└── div.tooltip-inner
type Tooltip struct {
	*floating
}

var _ Widget = (*Tooltip)(nil)

// NewTooltip binds a hidden tooltip to trigger.
func NewTooltip(trigger *dom.Element, settings TooltipSettings) (*Tooltip, error) {
	f, err := newFloating("tooltip", trigger, settings, tooltipMarkup)
	if err != nil {
		return nil, err
	}
	return &Tooltip{floating: f}, nil
}

func tooltipMarkup(doc *dom.Document, s TooltipSettings) (tip, arrow *dom.Element) {
	tip = div(doc, "tooltip")
	arrow = div(doc, "tooltip-arrow")
	inner := div(doc, "tooltip-inner")
	inner.SetTextContent(s.Title)
	_, _ = tip.AppendChild(arrow.AsNode())
	_, _ = tip.AppendChild(inner.AsNode())
	return tip, arrow
}
