package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibeui/css"
)

// StyleSheets returns the parsed sheets of the document's style elements in
// document order. Style elements with a type other than text/css are
// ignored.
func (d *Document) StyleSheets() []*css.Stylesheet {
	dd := d.documentData
	parsed := make(map[string]*css.Stylesheet)
	var sheets []*css.Stylesheet
	for _, el := range d.QueryAllFunc(isStyleElement) {
		text := el.TextContent()
		ss, ok := dd.parsedSheets[text]
		if !ok {
			ss = css.ParseStylesheet(text)
		}
		parsed[text] = ss
		sheets = append(sheets, ss)
	}
	dd.parsedSheets = parsed
	return sheets
}

func isStyleElement(el *Element) bool {
	if el.LocalName() != "style" {
		return false
	}
	typ := strings.ToLower(strings.TrimSpace(el.GetAttribute("type")))
	return typ == "" || typ == "text/css"
}

// styleResolver returns a resolver over the document's current sheets.
func (d *Document) styleResolver() *css.StyleResolver {
	dd := d.documentData
	if dd.resolver == nil || dd.resolverVersion != dd.styleVersion {
		dd.resolver = css.NewStyleResolver()
		for _, ss := range d.StyleSheets() {
			dd.resolver.AddAuthorStylesheet(ss)
		}
		dd.resolverVersion = dd.styleVersion
	}
	return dd.resolver
}

// declaredStyle returns the winning sheet declarations for the element,
// cached until the document changes.
func (e *Element) declaredStyle() map[string]css.Declaration {
	doc := e.ownerDoc
	if doc == nil || doc.documentData == nil {
		return nil
	}
	ed := e.elementData
	if ed.declared == nil || ed.declaredVersion != doc.documentData.styleVersion {
		ed.declared = doc.styleResolver().Resolve(styleTarget{e})
		ed.declaredVersion = doc.documentData.styleVersion
	}
	return ed.declared
}

// styleTarget adapts an element to what selectors match against.
type styleTarget struct {
	el *Element
}

func target(el *Element) css.Element {
	if el == nil {
		return nil
	}
	return styleTarget{el}
}

func (t styleTarget) LocalName() string               { return t.el.LocalName() }
func (t styleTarget) Id() string                      { return t.el.Id() }
func (t styleTarget) HasClass(name string) bool       { return t.el.ClassList().Contains(name) }
func (t styleTarget) HasAttribute(name string) bool   { return t.el.HasAttribute(name) }
func (t styleTarget) GetAttribute(name string) string { return t.el.GetAttribute(name) }
func (t styleTarget) Parent() css.Element             { return target(t.el.ParentElement()) }
func (t styleTarget) PreviousSibling() css.Element    { return target(t.el.PreviousElementSibling()) }
func (t styleTarget) NextSibling() css.Element        { return target(t.el.NextElementSibling()) }
func (t styleTarget) HasChildNodes() bool             { return t.el.AsNode().HasChildNodes() }

// Matches reports whether the element matches a selector list. Selectors
// that do not parse return the parse error.
func (e *Element) Matches(selectors string) (bool, error) {
	sel, err := css.ParseSelector(selectors)
	if err != nil {
		return false, err
	}
	return sel.MatchElement(styleTarget{e}), nil
}

// QuerySelectorAll returns the elements of the document matching a selector
// list, in document order.
func (d *Document) QuerySelectorAll(selectors string) ([]*Element, error) {
	sel, err := css.ParseSelector(selectors)
	if err != nil {
		return nil, err
	}
	return d.QueryAllFunc(func(el *Element) bool {
		return sel.MatchElement(styleTarget{el})
	}), nil
}
