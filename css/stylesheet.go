package css

import (
	"strings"
)

// Stylesheet is a parsed list of style rules. At-rules are skipped.
type Stylesheet struct {
	Rules []Rule
}

// Rule is one style rule: a selector list and its declarations.
type Rule struct {
	SelectorText string
	Selector     *CSSSelector
	Declarations []Declaration
}

// Declaration is one property: value pair. Shorthands of rules are already
// expanded into longhands.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// ParseStylesheet parses the text of a style element. Rules whose selector
// does not parse are dropped; the rest of the sheet is kept.
func ParseStylesheet(input string) *Stylesheet {
	input = stripComments(input)
	ss := &Stylesheet{}
	for pos := 0; pos < len(input); {
		rest := strings.TrimLeft(input[pos:], " \t\r\n\f")
		pos = len(input) - len(rest)
		if rest == "" {
			break
		}
		open := strings.IndexByte(rest, '{')
		if rest[0] == '@' {
			semi := strings.IndexByte(rest, ';')
			if semi >= 0 && (open < 0 || semi < open) {
				pos += semi + 1
				continue
			}
		}
		if open < 0 {
			break
		}
		end := matchingBrace(rest, open)
		prelude, block := strings.TrimSpace(rest[:open]), rest[open+1:end]
		pos += min(end+1, len(rest))

		if strings.HasPrefix(prelude, "@") {
			continue
		}
		sel, err := ParseSelector(prelude)
		if err != nil {
			continue
		}
		ss.Rules = append(ss.Rules, Rule{
			SelectorText: prelude,
			Selector:     sel,
			Declarations: ExpandShorthands(lowerProperties(ParseDeclarations(block))),
		})
	}
	return ss
}

// matchingBrace returns the index of the brace closing the one at open, or
// len(s) for an unterminated block.
func matchingBrace(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}

// ParseDeclarations parses a declaration block such as a style attribute.
// Empty or malformed declarations are skipped. Semicolons inside
// parentheses or strings do not split.
func ParseDeclarations(input string) []Declaration {
	var decls []Declaration
	for _, part := range splitDeclarations(input) {
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		property := strings.TrimSpace(part[:colon])
		value := strings.TrimSpace(part[colon+1:])
		if property == "" || value == "" {
			continue
		}
		important := false
		if idx := strings.LastIndexByte(value, '!'); idx >= 0 &&
			strings.EqualFold(strings.TrimSpace(value[idx+1:]), "important") {
			important = true
			value = strings.TrimSpace(value[:idx])
		}
		if value == "" {
			continue
		}
		decls = append(decls, Declaration{Property: property, Value: value, Important: important})
	}
	return decls
}

func lowerProperties(decls []Declaration) []Declaration {
	for i := range decls {
		decls[i].Property = strings.ToLower(decls[i].Property)
	}
	return decls
}

func splitDeclarations(s string) []string {
	var parts []string
	depth, start := 0, 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case c == ';' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// ExpandShorthands replaces box shorthands by their longhands and adds the
// overflow-x and overflow-y longhands of overflow. Shorthands with a value
// that does not expand are dropped.
func ExpandShorthands(decls []Declaration) []Declaration {
	out := make([]Declaration, 0, len(decls))
	for _, d := range decls {
		if longhands, ok := Shorthands[d.Property]; ok {
			values, ok := ParseBoxShorthand(d.Value)
			if !ok {
				continue
			}
			for i, lh := range longhands {
				out = append(out, Declaration{Property: lh, Value: values[i], Important: d.Important})
			}
			continue
		}
		out = append(out, d)
		if d.Property == "overflow" {
			for _, lh := range []string{"overflow-x", "overflow-y"} {
				out = append(out, Declaration{Property: lh, Value: d.Value, Important: d.Important})
			}
		}
	}
	return out
}
