package widget

import (
	"github.com/chrisuehlinger/vibeui/dom"
)

// StylesheetAttribute marks the style element InstallStylesheet adds.
const StylesheetAttribute = "data-ui-stylesheet"

// Stylesheet holds the default rules for the widget markup. The sizes
// positioning depends on come from here; pages override them with their
// own rules, which follow it in the cascade.
const Stylesheet = `
.tooltip, .popover { z-index: 1070 }
.tooltip-arrow, .popover-arrow { position: absolute; width: 8px; height: 8px }
.tooltip-inner, .popover-header, .popover-body { padding: 4px 8px }
`

// InstallStylesheet adds the default widget rules to doc as the first
// style element of its head. It does nothing if they are already there.
func InstallStylesheet(doc *dom.Document) {
	if doc == nil || len(doc.QueryAllFunc(isWidgetStylesheet)) > 0 {
		return
	}
	parent := doc.Head()
	if parent == nil {
		parent = doc.DocumentElement()
	}
	if parent == nil {
		tracer().Errorf("document has no root element, widget styles not installed")
		return
	}
	style := doc.CreateElement("style")
	style.SetAttribute(StylesheetAttribute, "")
	style.SetTextContent(Stylesheet)
	if _, err := parent.AsNode().InsertBefore(style.AsNode(), parent.AsNode().FirstChild()); err != nil {
		tracer().Errorf("installing widget styles: %v", err)
	}
}

func isWidgetStylesheet(el *dom.Element) bool {
	return el.LocalName() == "style" && el.HasAttribute(StylesheetAttribute)
}
