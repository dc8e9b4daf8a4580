package css

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input  string
		want   color.RGBA
		wantOK bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{" SteelBlue ", color.RGBA{70, 130, 180, 255}, true},
		{"transparent", color.RGBA{}, true},
		{"#0f0", color.RGBA{0, 255, 0, 255}, true},
		{"#00ff0080", color.RGBA{0, 255, 0, 128}, true},
		{"#123456", color.RGBA{0x12, 0x34, 0x56, 255}, true},
		{"rgb(1, 2, 3)", color.RGBA{1, 2, 3, 255}, true},
		{"rgba(10, 20, 30, 0.5)", color.RGBA{10, 20, 30, 128}, true},
		{"rgb(10 20 30 / 50%)", color.RGBA{10, 20, 30, 128}, true},
		{"rgb(300, -1, 0)", color.RGBA{255, 0, 0, 255}, true},
		{"#12", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"rgb(1, 2)", color.RGBA{}, false},
		{"blurple", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
