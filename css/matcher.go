package css

import "strings"

// Element is the view of a document element that selectors are matched
// against. Parent and sibling accessors return nil, not a typed nil, at the
// end of the chain.
type Element interface {
	LocalName() string
	Id() string
	HasClass(name string) bool
	HasAttribute(name string) bool
	GetAttribute(name string) string
	Parent() Element
	PreviousSibling() Element
	NextSibling() Element
	HasChildNodes() bool
}

// MatchElement tests if any selector of the list matches an element.
func (s *CSSSelector) MatchElement(el Element) bool {
	_, ok := s.Match(el)
	return ok
}

// Match tests the selector list against an element and returns the highest
// specificity among the complex selectors that match.
func (s *CSSSelector) Match(el Element) (Specificity, bool) {
	var best Specificity
	matched := false
	for _, cs := range s.ComplexSelectors {
		if !cs.MatchElement(el) {
			continue
		}
		if spec := cs.CalculateSpecificity(); !matched || spec.Compare(best) > 0 {
			best = spec
		}
		matched = true
	}
	return best, matched
}

// MatchElement tests if a complex selector matches an element, working from
// the subject leftwards through the combinators.
func (cs *ComplexSelector) MatchElement(el Element) bool {
	if len(cs.Compounds) == 0 {
		return false
	}
	i := len(cs.Compounds) - 1
	if !cs.Compounds[i].MatchElement(el) {
		return false
	}
	return cs.matchFrom(i, el)
}

// matchFrom matches compounds [0, i) against the relatives of el, which
// matched compound i. Descendant and sibling combinators backtrack.
func (cs *ComplexSelector) matchFrom(i int, el Element) bool {
	if i == 0 {
		return true
	}
	compound := cs.Compounds[i-1]
	switch compound.Combinator {
	case CombinatorDescendant:
		for ancestor := el.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
			if compound.MatchElement(ancestor) && cs.matchFrom(i-1, ancestor) {
				return true
			}
		}
	case CombinatorChild:
		parent := el.Parent()
		return parent != nil && compound.MatchElement(parent) && cs.matchFrom(i-1, parent)
	case CombinatorNextSibling:
		prev := el.PreviousSibling()
		return prev != nil && compound.MatchElement(prev) && cs.matchFrom(i-1, prev)
	case CombinatorSubsequentSibling:
		for prev := el.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
			if compound.MatchElement(prev) && cs.matchFrom(i-1, prev) {
				return true
			}
		}
	}
	return false
}

// MatchElement tests if a compound selector matches an element. Selectors
// with a pseudo-element never match the element itself.
func (c *CompoundSelector) MatchElement(el Element) bool {
	if c.PseudoElement != "" {
		return false
	}
	if c.TypeSelector != "" && c.TypeSelector != "*" && c.TypeSelector != el.LocalName() {
		return false
	}
	for _, id := range c.IDSelectors {
		if el.Id() != id {
			return false
		}
	}
	for _, class := range c.ClassSelectors {
		if !el.HasClass(class) {
			return false
		}
	}
	for _, attr := range c.AttributeMatchers {
		if !matchAttributeSelector(attr, el) {
			return false
		}
	}
	for _, pc := range c.PseudoClasses {
		if !matchPseudoClass(pc, el) {
			return false
		}
	}
	return true
}

func matchAttributeSelector(attr *AttributeMatcher, el Element) bool {
	if !el.HasAttribute(attr.Name) {
		return false
	}
	value, want := el.GetAttribute(attr.Name), attr.Value
	if attr.CaseInsensitive {
		value, want = strings.ToLower(value), strings.ToLower(want)
	}
	switch attr.Operator {
	case AttrExists:
		return true
	case AttrEquals:
		return value == want
	case AttrIncludes:
		for _, word := range strings.Fields(value) {
			if word == want {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return value == want || strings.HasPrefix(value, want+"-")
	case AttrPrefix:
		return want != "" && strings.HasPrefix(value, want)
	case AttrSuffix:
		return want != "" && strings.HasSuffix(value, want)
	case AttrSubstring:
		return want != "" && strings.Contains(value, want)
	}
	return false
}

func matchPseudoClass(pc *PseudoClassSelector, el Element) bool {
	switch pc.Name {
	case "not":
		return !pc.Selector.MatchElement(el)
	case "first-child":
		return el.Parent() != nil && el.PreviousSibling() == nil
	case "last-child":
		return el.Parent() != nil && el.NextSibling() == nil
	case "only-child":
		return el.Parent() != nil && el.PreviousSibling() == nil && el.NextSibling() == nil
	case "root":
		return el.Parent() == nil && el.LocalName() == "html"
	case "empty":
		return !el.HasChildNodes()
	}
	return false
}
