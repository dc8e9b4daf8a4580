package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
)

// CSSStyleDeclaration represents an element's inline style.
// It provides methods for getting and setting individual CSS properties.
type CSSStyleDeclaration struct {
	// The element this style declaration belongs to
	element *Element

	// Parsed declarations (property name -> declaration)
	declarations map[string]*styleProperty

	// Order in which properties were set (for cssText serialization)
	propertyOrder []string
}

// styleProperty holds a single CSS property's value and priority.
type styleProperty struct {
	value    string
	priority string // "important" or ""
}

// NewCSSStyleDeclaration creates a new CSSStyleDeclaration for an element.
func NewCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{
		element:      element,
		declarations: make(map[string]*styleProperty),
	}
	// Parse initial style attribute
	if element != nil && element.HasAttribute("style") {
		sd.parse(element.GetAttribute("style"))
	}
	return sd
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	if len(sd.declarations) == 0 {
		return ""
	}

	var parts []string
	for _, prop := range sd.propertyOrder {
		if sp, ok := sd.declarations[prop]; ok {
			part := prop + ": " + sp.value
			if sp.priority == "important" {
				part += " !important"
			}
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "; ")
}

// SetCSSText parses and sets all properties from a CSS text string.
func (sd *CSSStyleDeclaration) SetCSSText(cssText string) {
	sd.declarations = make(map[string]*styleProperty)
	sd.propertyOrder = nil
	sd.parse(cssText)
	sd.syncToAttribute()
}

// Length returns the number of properties set.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.declarations)
}

// GetPropertyValue returns the value of a CSS property.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	property = normalizeCSSPropertyName(property)
	if sp, ok := sd.declarations[property]; ok {
		return sp.value
	}
	return ""
}

// GetPropertyPriority returns "important" for important declarations and
// "" otherwise.
func (sd *CSSStyleDeclaration) GetPropertyPriority(property string) string {
	property = normalizeCSSPropertyName(property)
	if sp, ok := sd.declarations[property]; ok {
		return sp.priority
	}
	return ""
}

// SetProperty sets a CSS property with an optional priority. Box shorthands
// (margin, padding) are expanded into their longhands. An empty value
// removes the property.
func (sd *CSSStyleDeclaration) SetProperty(property, value string, priority ...string) {
	property = normalizeCSSPropertyName(property)
	if property == "" {
		return
	}
	if value == "" {
		sd.RemoveProperty(property)
		return
	}

	pri := ""
	if len(priority) > 0 && strings.ToLower(priority[0]) == "important" {
		pri = "important"
	}
	sd.set(property, value, pri)
	sd.syncToAttribute()
}

// RemoveProperty removes a CSS property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	property = normalizeCSSPropertyName(property)
	if longhands, ok := css.Shorthands[property]; ok {
		for _, lh := range longhands {
			sd.remove(lh)
		}
		sd.syncToAttribute()
		return ""
	}
	old, ok := sd.remove(property)
	if ok {
		sd.syncToAttribute()
	}
	return old
}

// set stores a declaration without syncing the attribute.
func (sd *CSSStyleDeclaration) set(property, value, priority string) {
	if longhands, ok := css.Shorthands[property]; ok {
		if values, ok := css.ParseBoxShorthand(value); ok {
			for i, lh := range longhands {
				sd.set(lh, values[i], priority)
			}
		}
		return
	}
	if _, exists := sd.declarations[property]; !exists {
		sd.propertyOrder = append(sd.propertyOrder, property)
	}
	sd.declarations[property] = &styleProperty{
		value:    value,
		priority: priority,
	}
}

func (sd *CSSStyleDeclaration) remove(property string) (string, bool) {
	sp, ok := sd.declarations[property]
	if !ok {
		return "", false
	}
	delete(sd.declarations, property)
	for i, p := range sd.propertyOrder {
		if p == property {
			sd.propertyOrder = append(sd.propertyOrder[:i], sd.propertyOrder[i+1:]...)
			break
		}
	}
	return sp.value, true
}

// parse parses a style attribute string into declarations.
func (sd *CSSStyleDeclaration) parse(styleAttr string) {
	for _, decl := range css.ParseDeclarations(styleAttr) {
		priority := ""
		if decl.Important {
			priority = "important"
		}
		sd.set(normalizeCSSPropertyName(decl.Property), decl.Value, priority)
	}
}

// syncToAttribute syncs the declarations back to the element's style attribute.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}

	cssText := sd.CSSText()
	if cssText == "" {
		sd.element.removeAttributeRaw("style")
	} else {
		// Directly set attribute without triggering re-parse
		sd.element.setAttributeRaw("style", cssText)
	}
	sd.element.AsNode().invalidateLayout()
}

// refreshFromAttribute reloads declarations from the element's style
// attribute after it was changed externally.
func (sd *CSSStyleDeclaration) refreshFromAttribute() {
	sd.declarations = make(map[string]*styleProperty)
	sd.propertyOrder = nil
	if sd.element != nil && sd.element.HasAttribute("style") {
		sd.parse(sd.element.GetAttribute("style"))
	}
}

// PropertyNames returns all property names in declaration order.
func (sd *CSSStyleDeclaration) PropertyNames() []string {
	result := make([]string, len(sd.propertyOrder))
	copy(result, sd.propertyOrder)
	return result
}

// normalizeCSSPropertyName converts camelCase to kebab-case and lowercases.
// Examples: "backgroundColor" -> "background-color", "marginLeft" -> "margin-left"
func normalizeCSSPropertyName(name string) string {
	if name == "" {
		return ""
	}

	// If already kebab-case, just lowercase
	if strings.Contains(name, "-") {
		return strings.ToLower(name)
	}

	// Convert camelCase to kebab-case
	var result strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				result.WriteByte('-')
			}
			result.WriteByte(byte(r - 'A' + 'a'))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
