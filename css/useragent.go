package css

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// hiddenElements are never rendered by the user agent.
var hiddenElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Title:    true,
	atom.Template: true,
	atom.Meta:     true,
	atom.Link:     true,
}

// userAgentDefaults holds initial values for the properties the toolkit
// reads. Anything not listed resolves to the empty string.
var userAgentDefaults = map[string]string{
	"display":        "block",
	"position":       "static",
	"overflow":       "visible",
	"overflow-x":     "visible",
	"overflow-y":     "visible",
	"margin-top":     "0px",
	"margin-right":   "0px",
	"margin-bottom":  "0px",
	"margin-left":    "0px",
	"padding-top":    "0px",
	"padding-right":  "0px",
	"padding-bottom": "0px",
	"padding-left":   "0px",
	"top":            "auto",
	"right":          "auto",
	"bottom":         "auto",
	"left":           "auto",
	"width":          "auto",
	"height":         "auto",
	"transform":      "none",
}

// UserAgentDefault returns the user agent value of property for an element
// with the given tag name.
func UserAgentDefault(tagName, property string) string {
	tag := atom.Lookup([]byte(strings.ToLower(tagName)))
	property = strings.ToLower(property)
	switch property {
	case "display":
		if hiddenElements[tag] {
			return "none"
		}
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		if tag == atom.Body {
			return "8px"
		}
	}
	return userAgentDefaults[property]
}

// Shorthands maps a shorthand property onto the longhands it expands to, in
// top/right/bottom/left order.
var Shorthands = map[string][4]string{
	"margin":  {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	"padding": {"padding-top", "padding-right", "padding-bottom", "padding-left"},
}
