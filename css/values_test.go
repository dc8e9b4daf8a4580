package css

import "testing"

func TestParseLength(t *testing.T) {
	tests := []struct {
		input  string
		base   float64
		want   float64
		wantOK bool
	}{
		{"12px", 0, 12, true},
		{" -4.5px ", 0, -4.5, true},
		{"0", 0, 0, true},
		{"50%", 300, 150, true},
		{"auto", 100, 0, false},
		{"", 100, 0, false},
		{"abcpx", 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLength(tt.input, tt.base)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseLength(%q, %v) = %v, %v; expected %v, %v", tt.input, tt.base, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseBoxShorthand(t *testing.T) {
	tests := []struct {
		input string
		want  [4]string
	}{
		{"1px", [4]string{"1px", "1px", "1px", "1px"}},
		{"1px 2px", [4]string{"1px", "2px", "1px", "2px"}},
		{"1px 2px 3px", [4]string{"1px", "2px", "3px", "2px"}},
		{"1px 2px 3px 4px", [4]string{"1px", "2px", "3px", "4px"}},
	}
	for _, tt := range tests {
		got, ok := ParseBoxShorthand(tt.input)
		if !ok || got != tt.want {
			t.Errorf("ParseBoxShorthand(%q) = %v; expected %v", tt.input, got, tt.want)
		}
	}
	if _, ok := ParseBoxShorthand("1px 2px 3px 4px 5px"); ok {
		t.Error("Expected five values to be rejected")
	}
}

func TestParseTranslate(t *testing.T) {
	tests := []struct {
		input string
		x, y  float64
	}{
		{"none", 0, 0},
		{"translate(10px, 20px)", 10, 20},
		{"translate3d(-5px, 7px, 0)", -5, 7},
		{"translateX(3px) translateY(4px)", 3, 4},
		{"rotate(45deg) translate(1px, 1px)", 1, 1},
	}
	for _, tt := range tests {
		x, y := ParseTranslate(tt.input)
		if x != tt.x || y != tt.y {
			t.Errorf("ParseTranslate(%q) = (%v, %v); expected (%v, %v)", tt.input, x, y, tt.x, tt.y)
		}
	}
}

func TestKeywordPredicates(t *testing.T) {
	if !IsScrollableOverflow("auto") || !IsScrollableOverflow("scroll") {
		t.Error("Expected auto and scroll to be scrollable")
	}
	if IsScrollableOverflow("hidden") || IsScrollableOverflow("visible") {
		t.Error("Expected hidden and visible not to be scrollable")
	}
	if IsPositioned("static") || IsPositioned("") {
		t.Error("Expected static to be unpositioned")
	}
	if !IsPositioned("relative") || !IsPositioned("fixed") {
		t.Error("Expected relative and fixed to be positioned")
	}
}

func TestUserAgentDefault(t *testing.T) {
	if got := UserAgentDefault("HEAD", "display"); got != "none" {
		t.Errorf("Expected head display none, got %q", got)
	}
	if got := UserAgentDefault("div", "display"); got != "block" {
		t.Errorf("Expected div display block, got %q", got)
	}
	if got := UserAgentDefault("body", "margin-left"); got != "8px" {
		t.Errorf("Expected body margin 8px, got %q", got)
	}
	if got := UserAgentDefault("span", "position"); got != "static" {
		t.Errorf("Expected static position, got %q", got)
	}
}

func TestFormatPx(t *testing.T) {
	if got := FormatPx(12); got != "12px" {
		t.Errorf("Expected 12px, got %q", got)
	}
	if got := FormatPx(-0.0 * 1); got != "0px" {
		t.Errorf("Expected 0px, got %q", got)
	}
	if got := FormatPx(2.5); got != "2.5px" {
		t.Errorf("Expected 2.5px, got %q", got)
	}
}
