// Package css provides parsing of the CSS values the toolkit reads back from
// inline and computed styles, plus the user agent defaults used when a
// property has not been declared.
package css

import (
	"strconv"
	"strings"
)

// ParseLength parses a CSS length. Pixel values, unitless numbers and
// percentages (resolved against percentBase) are supported. Keywords such as
// "auto" and empty values report ok == false.
func ParseLength(value string, percentBase float64) (float64, bool) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" || v == "auto" || v == "none" || v == "normal" {
		return 0, false
	}
	switch {
	case strings.HasSuffix(v, "px"):
		return parseNumber(v[:len(v)-2])
	case strings.HasSuffix(v, "%"):
		n, ok := parseNumber(v[:len(v)-1])
		if !ok {
			return 0, false
		}
		return n * percentBase / 100, true
	default:
		return parseNumber(v)
	}
}

// LengthOrZero is ParseLength for callers that treat unparsable values as 0.
func LengthOrZero(value string, percentBase float64) float64 {
	n, _ := ParseLength(value, percentBase)
	return n
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseBoxShorthand expands a margin/padding style shorthand of one to four
// values into its top, right, bottom and left components.
func ParseBoxShorthand(value string) ([4]string, bool) {
	var out [4]string
	parts := strings.Fields(value)
	switch len(parts) {
	case 1:
		out = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		out = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		out = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		out = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		return out, false
	}
	return out, true
}

// ParseTranslate extracts the translation of a transform value. Only the
// translate family of functions is understood; everything else contributes
// nothing. Multiple translate functions accumulate.
func ParseTranslate(value string) (x, y float64) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" || v == "none" {
		return 0, 0
	}
	for v != "" {
		open := strings.Index(v, "(")
		if open < 0 {
			break
		}
		end := strings.Index(v[open:], ")")
		if end < 0 {
			break
		}
		fn := strings.TrimSpace(v[:open])
		args := splitArgs(v[open+1 : open+end])
		v = strings.TrimSpace(v[open+end+1:])

		switch fn {
		case "translate", "translate3d":
			if len(args) > 0 {
				x += LengthOrZero(args[0], 0)
			}
			if len(args) > 1 {
				y += LengthOrZero(args[1], 0)
			}
		case "translatex":
			if len(args) > 0 {
				x += LengthOrZero(args[0], 0)
			}
		case "translatey":
			if len(args) > 0 {
				y += LengthOrZero(args[0], 0)
			}
		}
	}
	return x, y
}

func splitArgs(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// IsScrollableOverflow reports whether an overflow value creates a scroll
// container.
func IsScrollableOverflow(value string) bool {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "auto", "scroll", "overlay":
		return true
	}
	return false
}

// IsPositioned reports whether a position value takes the box out of the
// static positioning scheme.
func IsPositioned(value string) bool {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "static":
		return false
	}
	return true
}

// FormatPx formats n as a pixel length, dropping a zero fraction.
func FormatPx(n float64) string {
	if n == 0 {
		n = 0 // normalize -0
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + "px"
}
