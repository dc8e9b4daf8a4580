package css

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color: a named color, "transparent", #rgb,
// #rgba, #rrggbb, #rrggbbaa, rgb() or rgba().
func ParseColor(value string) (color.RGBA, bool) {
	s := strings.TrimSpace(strings.ToLower(value))
	if s == "transparent" {
		return color.RGBA{}, true
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHexColor(hex)
	}
	for _, prefix := range []string{"rgba(", "rgb("} {
		if args, ok := strings.CutPrefix(s, prefix); ok {
			args, ok = strings.CutSuffix(args, ")")
			if !ok {
				return color.RGBA{}, false
			}
			return parseRGBArgs(args)
		}
	}
	return color.RGBA{}, false
}

func parseHexColor(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3, 4:
		// #rgb(a): every digit is doubled
		var long strings.Builder
		for _, r := range hex {
			long.WriteRune(r)
			long.WriteRune(r)
		}
		hex = long.String()
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, true
}

// parseRGBArgs reads "r, g, b[, a]" or the space separated "r g b[ / a]".
func parseRGBArgs(args string) (color.RGBA, bool) {
	args = strings.NewReplacer(",", " ", "/", " ").Replace(args)
	parts := strings.Fields(args)
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, false
	}
	var channels [4]uint8
	channels[3] = 255
	for i, p := range parts {
		limit := 255.0
		if i == 3 {
			limit = 1
		}
		n, ok := ParseLength(p, limit)
		if !ok || strings.HasSuffix(p, "px") {
			return color.RGBA{}, false
		}
		n = max(0, min(n, limit))
		if i == 3 {
			n *= 255
		}
		channels[i] = uint8(n + 0.5)
	}
	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, true
}
