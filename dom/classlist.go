package dom

import (
	"strings"
)

// validateToken checks if a class token is valid.
func validateToken(token string) error {
	if token == "" {
		return ErrSyntax("the token provided must not be empty")
	}
	if strings.ContainsAny(token, " \t\n\r\f") {
		return &DOMError{Name: "InvalidCharacterError", Message: "the token '" + token + "' contains whitespace"}
	}
	return nil
}

// ClassList is a live view of an element's class attribute.
type ClassList struct {
	element *Element
}

// tokens returns the current list of tokens (deduplicated, preserving order).
func (cl *ClassList) tokens() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range strings.Fields(cl.element.GetAttribute("class")) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func (cl *ClassList) write(tokens []string) {
	cl.element.SetAttribute("class", strings.Join(tokens, " "))
}

// Contains reports whether token is present.
func (cl *ClassList) Contains(token string) bool {
	for _, t := range cl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends tokens that are not yet present.
func (cl *ClassList) Add(tokens ...string) error {
	current := cl.tokens()
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
		if !containsToken(current, token) {
			current = append(current, token)
		}
	}
	cl.write(current)
	return nil
}

// Remove deletes tokens if present.
func (cl *ClassList) Remove(tokens ...string) error {
	current := cl.tokens()
	for _, token := range tokens {
		if err := validateToken(token); err != nil {
			return err
		}
		for i, t := range current {
			if t == token {
				current = append(current[:i], current[i+1:]...)
				break
			}
		}
	}
	cl.write(current)
	return nil
}

// Values returns the tokens in order.
func (cl *ClassList) Values() []string {
	return cl.tokens()
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
