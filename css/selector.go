package css

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is returned for selectors that do not parse.
var ErrInvalidSelector = errors.New("css: invalid selector")

// CSSSelector is a parsed selector list.
type CSSSelector struct {
	// A selector is a list of complex selectors separated by commas
	ComplexSelectors []*ComplexSelector
}

// ComplexSelector is a chain of compound selectors separated by combinators.
type ComplexSelector struct {
	Compounds []*CompoundSelector
}

// CompoundSelector is a sequence of simple selectors.
type CompoundSelector struct {
	TypeSelector      string // "" for none, "*" for universal
	IDSelectors       []string
	ClassSelectors    []string
	AttributeMatchers []*AttributeMatcher
	PseudoClasses     []*PseudoClassSelector
	PseudoElement     string
	Combinator        CombinatorType // Combinator following this compound selector
}

// CombinatorType represents the type of combinator.
type CombinatorType int

const (
	CombinatorNone              CombinatorType = iota
	CombinatorDescendant                       // (whitespace)
	CombinatorChild                            // >
	CombinatorNextSibling                      // +
	CombinatorSubsequentSibling                // ~
)

// AttributeMatcher represents an attribute selector.
type AttributeMatcher struct {
	Name            string
	Operator        AttributeOperator
	Value           string
	CaseInsensitive bool
}

// AttributeOperator represents the operator in an attribute selector.
type AttributeOperator int

const (
	AttrExists    AttributeOperator = iota // [attr]
	AttrEquals                             // [attr=value]
	AttrIncludes                           // [attr~=value]
	AttrDashMatch                          // [attr|=value]
	AttrPrefix                             // [attr^=value]
	AttrSuffix                             // [attr$=value]
	AttrSubstring                          // [attr*=value]
)

var attributeOperators = map[string]AttributeOperator{
	"=":  AttrEquals,
	"~=": AttrIncludes,
	"|=": AttrDashMatch,
	"^=": AttrPrefix,
	"$=": AttrSuffix,
	"*=": AttrSubstring,
}

// PseudoClassSelector represents a pseudo-class.
type PseudoClassSelector struct {
	Name     string
	Selector *CSSSelector // argument of :not()
}

// structuralPseudoClasses are matched against the tree.
var structuralPseudoClasses = map[string]bool{
	"first-child": true,
	"last-child":  true,
	"only-child":  true,
	"root":        true,
	"empty":       true,
}

// statePseudoClasses depend on user interaction, which documents here never
// have, so they parse but never match.
var statePseudoClasses = map[string]bool{
	"hover":         true,
	"focus":         true,
	"focus-visible": true,
	"focus-within":  true,
	"active":        true,
	"visited":       true,
	"checked":       true,
	"disabled":      true,
}

// SelectorParser parses CSS selectors.
type SelectorParser struct {
	input string
	pos   int
}

// ParseSelector parses a comma separated selector list.
func ParseSelector(input string) (*CSSSelector, error) {
	p := &SelectorParser{input: input}
	sel, err := p.parseSelector()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorf("unexpected %q", p.current())
	}
	return sel, nil
}

func (p *SelectorParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrInvalidSelector, p.input, p.pos, fmt.Sprintf(format, args...))
}

func (p *SelectorParser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *SelectorParser) current() byte {
	if p.atEnd() {
		return 0
	}
	return p.input[p.pos]
}

func (p *SelectorParser) skipWhitespace() bool {
	start := p.pos
	for !p.atEnd() && isSpace(p.current()) {
		p.pos++
	}
	return p.pos > start
}

func (p *SelectorParser) parseSelector() (*CSSSelector, error) {
	sel := &CSSSelector{}
	for {
		p.skipWhitespace()
		cs, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		sel.ComplexSelectors = append(sel.ComplexSelectors, cs)
		p.skipWhitespace()
		if p.current() != ',' {
			return sel, nil
		}
		p.pos++
	}
}

func (p *SelectorParser) parseComplexSelector() (*ComplexSelector, error) {
	cs := &ComplexSelector{}
	for {
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return nil, err
		}
		cs.Compounds = append(cs.Compounds, compound)

		sawSpace := p.skipWhitespace()
		var comb CombinatorType
		switch c := p.current(); {
		case c == '>':
			comb = CombinatorChild
		case c == '+':
			comb = CombinatorNextSibling
		case c == '~':
			comb = CombinatorSubsequentSibling
		case c == 0 || c == ',' || c == ')':
			return cs, nil
		case sawSpace:
			comb = CombinatorDescendant
		default:
			return nil, p.errorf("unexpected %q", c)
		}
		if comb != CombinatorDescendant {
			p.pos++
			p.skipWhitespace()
		}
		compound.Combinator = comb
	}
}

func (p *SelectorParser) parseCompoundSelector() (*CompoundSelector, error) {
	c := &CompoundSelector{}
	if p.current() == '*' {
		p.pos++
		c.TypeSelector = "*"
	} else if isNameStart(p.current()) {
		c.TypeSelector = strings.ToLower(p.parseIdent())
	}
	for {
		switch p.current() {
		case '#':
			p.pos++
			name := p.parseName()
			if name == "" {
				return nil, p.errorf("empty id selector")
			}
			c.IDSelectors = append(c.IDSelectors, name)
		case '.':
			p.pos++
			name := p.parseIdent()
			if name == "" {
				return nil, p.errorf("empty class selector")
			}
			c.ClassSelectors = append(c.ClassSelectors, name)
		case '[':
			attr, err := p.parseAttributeSelector()
			if err != nil {
				return nil, err
			}
			c.AttributeMatchers = append(c.AttributeMatchers, attr)
		case ':':
			if strings.HasPrefix(p.input[p.pos:], "::") {
				p.pos += 2
				c.PseudoElement = strings.ToLower(p.parseIdent())
				if c.PseudoElement == "" {
					return nil, p.errorf("empty pseudo-element")
				}
				continue
			}
			pc, err := p.parsePseudoClass()
			if err != nil {
				return nil, err
			}
			c.PseudoClasses = append(c.PseudoClasses, pc)
		default:
			if c.isEmpty() {
				return nil, p.errorf("expected a selector")
			}
			return c, nil
		}
	}
}

func (c *CompoundSelector) isEmpty() bool {
	return c.TypeSelector == "" && len(c.IDSelectors) == 0 && len(c.ClassSelectors) == 0 &&
		len(c.AttributeMatchers) == 0 && len(c.PseudoClasses) == 0 && c.PseudoElement == ""
}

func (p *SelectorParser) parseAttributeSelector() (*AttributeMatcher, error) {
	p.pos++ // [
	p.skipWhitespace()
	attr := &AttributeMatcher{Name: strings.ToLower(p.parseIdent())}
	if attr.Name == "" {
		return nil, p.errorf("expected an attribute name")
	}
	p.skipWhitespace()
	if p.current() == ']' {
		p.pos++
		return attr, nil
	}

	op := string(p.current())
	if p.current() != '=' && p.pos+1 < len(p.input) {
		op = p.input[p.pos : p.pos+2]
	}
	operator, ok := attributeOperators[op]
	if !ok {
		return nil, p.errorf("unknown attribute operator")
	}
	attr.Operator = operator
	p.pos += len(op)
	p.skipWhitespace()

	switch q := p.current(); q {
	case '"', '\'':
		end := strings.IndexByte(p.input[p.pos+1:], q)
		if end < 0 {
			return nil, p.errorf("unterminated string")
		}
		attr.Value = p.input[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
	default:
		attr.Value = p.parseName()
		if attr.Value == "" {
			return nil, p.errorf("expected an attribute value")
		}
	}

	p.skipWhitespace()
	if p.current() == 'i' || p.current() == 'I' {
		attr.CaseInsensitive = true
		p.pos++
		p.skipWhitespace()
	}
	if p.current() != ']' {
		return nil, p.errorf("expected ']'")
	}
	p.pos++
	return attr, nil
}

func (p *SelectorParser) parsePseudoClass() (*PseudoClassSelector, error) {
	p.pos++ // :
	pc := &PseudoClassSelector{Name: strings.ToLower(p.parseIdent())}
	if pc.Name == "not" && p.current() == '(' {
		p.pos++
		inner, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		p.skipWhitespace()
		if p.current() != ')' {
			return nil, p.errorf("expected ')'")
		}
		p.pos++
		pc.Selector = inner
		return pc, nil
	}
	if !structuralPseudoClasses[pc.Name] && !statePseudoClasses[pc.Name] {
		return nil, p.errorf("unsupported pseudo-class %q", pc.Name)
	}
	return pc, nil
}

// parseIdent consumes an identifier, which may not start with a digit.
func (p *SelectorParser) parseIdent() string {
	if !isNameStart(p.current()) && !(p.current() == '-' && p.pos+1 < len(p.input)) {
		return ""
	}
	return p.parseName()
}

// parseName consumes a run of name characters.
func (p *SelectorParser) parseName() string {
	start := p.pos
	for !p.atEnd() && isNameChar(p.current()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c == '-' || c >= '0' && c <= '9'
}

// Specificity represents CSS selector specificity.
type Specificity struct {
	A int // ID selectors
	B int // Class selectors, attribute selectors, pseudo-classes
	C int // Type selectors, pseudo-elements
}

// Compare compares two specificities. Returns -1, 0, or 1.
func (s Specificity) Compare(other Specificity) int {
	for _, d := range [3]int{s.A - other.A, s.B - other.B, s.C - other.C} {
		if d > 0 {
			return 1
		}
		if d < 0 {
			return -1
		}
	}
	return 0
}

// CalculateSpecificity calculates the specificity of a complex selector.
// :not() counts as its most specific argument.
func (cs *ComplexSelector) CalculateSpecificity() Specificity {
	var spec Specificity
	for _, compound := range cs.Compounds {
		spec.A += len(compound.IDSelectors)
		spec.B += len(compound.ClassSelectors)
		spec.B += len(compound.AttributeMatchers)
		for _, pc := range compound.PseudoClasses {
			if pc.Selector == nil {
				spec.B++
				continue
			}
			var most Specificity
			for _, inner := range pc.Selector.ComplexSelectors {
				if s := inner.CalculateSpecificity(); s.Compare(most) > 0 {
					most = s
				}
			}
			spec.A, spec.B, spec.C = spec.A+most.A, spec.B+most.B, spec.C+most.C
		}
		if compound.TypeSelector != "" && compound.TypeSelector != "*" {
			spec.C++
		}
		if compound.PseudoElement != "" {
			spec.C++
		}
	}
	return spec
}
