package network

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://example.com/a/page.html", "script.js", "https://example.com/a/script.js"},
		{"https://example.com/a/page.html", "/root.js", "https://example.com/root.js"},
		{"https://example.com/a/page.html", "../up.js", "https://example.com/up.js"},
		{"https://example.com/a/", "https://other.org/x.js", "https://other.org/x.js"},
		{"file:///tmp/demo/index.html", "app.js", "file:///tmp/demo/app.js"},
		{"https://example.com/", "data:text/plain,hi", "data:text/plain,hi"},
		{"https://example.com/", "", "https://example.com/"},
	}
	for _, tt := range tests {
		got, err := ResolveURL(tt.base, tt.ref)
		if err != nil {
			t.Errorf("ResolveURL(%q, %q) error = %v", tt.base, tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		input     string
		mediaType string
		charset   string
		data      string
	}{
		{"data:,Hello%20World", "text/plain", "us-ascii", "Hello World"},
		{"data:text/html,<p>hi</p>", "text/html", "us-ascii", "<p>hi</p>"},
		{"data:text/javascript;charset=UTF-8;base64,dmFyIHggPSAxOw==", "text/javascript", "utf-8", "var x = 1;"},
	}
	for _, tt := range tests {
		got, err := ParseDataURL(tt.input)
		if err != nil {
			t.Errorf("ParseDataURL(%q) error = %v", tt.input, err)
			continue
		}
		if got.MediaType != tt.mediaType || got.Charset != tt.charset || string(got.Data) != tt.data {
			t.Errorf("ParseDataURL(%q) = %q, %q, %q; want %q, %q, %q",
				tt.input, got.MediaType, got.Charset, got.Data, tt.mediaType, tt.charset, tt.data)
		}
	}

	for _, bad := range []string{"http://example.com", "data:text/plain", "data:;base64,!!!"} {
		if _, err := ParseDataURL(bad); err == nil {
			t.Errorf("ParseDataURL(%q) expected an error", bad)
		}
	}
}

func TestFileURL(t *testing.T) {
	got, err := FileURL("demo/index.html")
	if err != nil {
		t.Fatalf("FileURL() error = %v", err)
	}
	abs, _ := filepath.Abs("demo/index.html")
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, filepath.ToSlash(abs)) {
		t.Errorf("FileURL() = %q, want file URL of %q", got, abs)
	}
}

func TestGuessContentType(t *testing.T) {
	tests := map[string]string{
		"https://example.com/index.html":  "text/html",
		"https://example.com/app.js?v=2":  "text/javascript",
		"file:///tmp/page.HTM":            "text/html",
		"https://example.com/styles.css":  "text/css",
		"https://example.com/noextension": "application/octet-stream",
	}
	for input, want := range tests {
		if got := GuessContentType(input); got != want {
			t.Errorf("GuessContentType(%q) = %q, want %q", input, got, want)
		}
	}
}
