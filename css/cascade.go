package css

import (
	"sort"
)

// CascadeOrigin represents the origin of a stylesheet in the cascade.
type CascadeOrigin int

const (
	OriginUserAgent CascadeOrigin = iota
	OriginAuthor
)

// MatchedRule is a declaration of a rule that matches an element, along
// with what the cascade orders it by.
type MatchedRule struct {
	Declaration Declaration
	Origin      CascadeOrigin
	Specificity Specificity
	Order       int // source order across all sheets
}

// StyleResolver resolves the declared values of elements from a set of
// stylesheets. Inline styles are not its concern; the caller layers them
// on top with Wins.
type StyleResolver struct {
	userAgentSheets []*Stylesheet
	authorSheets    []*Stylesheet
}

// NewStyleResolver creates a new style resolver.
func NewStyleResolver() *StyleResolver {
	return &StyleResolver{}
}

// AddUserAgentStylesheet adds a user agent stylesheet.
func (sr *StyleResolver) AddUserAgentStylesheet(ss *Stylesheet) {
	sr.userAgentSheets = append(sr.userAgentSheets, ss)
}

// AddAuthorStylesheet adds an author stylesheet. Later sheets win ties.
func (sr *StyleResolver) AddAuthorStylesheet(ss *Stylesheet) {
	sr.authorSheets = append(sr.authorSheets, ss)
}

// ClearAuthorStylesheets clears all author stylesheets.
func (sr *StyleResolver) ClearAuthorStylesheets() {
	sr.authorSheets = nil
}

// collectMatchingRules collects the declarations of all rules matching an
// element.
func (sr *StyleResolver) collectMatchingRules(el Element) []MatchedRule {
	var matched []MatchedRule
	order := 0
	collect := func(sheets []*Stylesheet, origin CascadeOrigin) {
		for _, ss := range sheets {
			for _, rule := range ss.Rules {
				spec, ok := rule.Selector.Match(el)
				for _, decl := range rule.Declarations {
					order++
					if ok {
						matched = append(matched, MatchedRule{
							Declaration: decl,
							Origin:      origin,
							Specificity: spec,
							Order:       order,
						})
					}
				}
			}
		}
	}
	collect(sr.userAgentSheets, OriginUserAgent)
	collect(sr.authorSheets, OriginAuthor)
	return matched
}

// sortByPrecedence sorts matched rules from lowest to highest precedence:
// normal user agent, normal author, important author, important user
// agent. Within each group, by specificity, then source order.
func sortByPrecedence(rules []MatchedRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		aLayer := cascadeLayer(a.Origin, a.Declaration.Important)
		bLayer := cascadeLayer(b.Origin, b.Declaration.Important)
		if aLayer != bLayer {
			return aLayer < bLayer
		}
		if cmp := a.Specificity.Compare(b.Specificity); cmp != 0 {
			return cmp < 0
		}
		return a.Order < b.Order
	})
}

// cascadeLayer returns a numeric value for cascade ordering.
// Lower values have lower precedence.
func cascadeLayer(origin CascadeOrigin, important bool) int {
	if important {
		if origin == OriginUserAgent {
			return 3
		}
		return 2
	}
	if origin == OriginUserAgent {
		return 0
	}
	return 1
}

// Resolve returns the winning declaration of every property set on el by
// some matching rule.
func (sr *StyleResolver) Resolve(el Element) map[string]Declaration {
	matched := sr.collectMatchingRules(el)
	sortByPrecedence(matched)
	out := make(map[string]Declaration, len(matched))
	for _, m := range matched {
		out[m.Declaration.Property] = m.Declaration
	}
	return out
}

// Wins reports whether a declaration from the stylesheets overrides an
// inline declaration with the given importance. Inline styles beat every
// normal declaration and lose only to important ones when they are normal
// themselves.
func (d Declaration) Wins(inlineImportant bool) bool {
	return d.Important && !inlineImportant
}
