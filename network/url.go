package network

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ResolveURL resolves ref against base. Absolute and data: references are
// returned unchanged.
func ResolveURL(base, ref string) (string, error) {
	if ref == "" {
		return base, nil
	}
	if IsDataURL(ref) {
		return ref, nil
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference URL: %w", err)
	}
	if refURL.IsAbs() || base == "" {
		return refURL.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// IsAbsoluteURL reports whether urlStr has a scheme.
func IsAbsoluteURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	return err == nil && u.IsAbs()
}

// IsDataURL reports whether urlStr is a data: URL.
func IsDataURL(urlStr string) bool {
	return strings.HasPrefix(strings.ToLower(urlStr), "data:")
}

// FileURL converts a local path to an absolute file:// URL.
func FileURL(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// DataURL is a decoded data: URL.
type DataURL struct {
	MediaType string
	Charset   string
	Data      []byte
}

var errNotDataURL = errors.New("not a data URL")

// ParseDataURL decodes data:[<mediatype>][;charset=…][;base64],<data>.
func ParseDataURL(urlStr string) (*DataURL, error) {
	if !IsDataURL(urlStr) {
		return nil, errNotDataURL
	}
	meta, data, ok := strings.Cut(urlStr[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL: missing comma")
	}

	result := &DataURL{MediaType: "text/plain", Charset: "us-ascii"}
	encoded := false
	for i, part := range strings.Split(meta, ";") {
		switch {
		case part == "base64":
			encoded = true
		case strings.HasPrefix(strings.ToLower(part), "charset="):
			result.Charset = strings.ToLower(part[len("charset="):])
		case i == 0 && part != "":
			result.MediaType = strings.ToLower(part)
		}
	}

	if encoded {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 data: %w", err)
		}
		result.Data = decoded
		return result, nil
	}
	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("decoding data: %w", err)
	}
	result.Data = []byte(decoded)
	return result, nil
}

// GuessContentType guesses a media type from the URL's file extension.
func GuessContentType(urlStr string) string {
	p := urlStr
	if u, err := url.Parse(urlStr); err == nil {
		p = u.Path
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".html", ".htm":
		return "text/html"
	case ".js", ".mjs":
		return "text/javascript"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			mediaType, _ := ParseContentType(t)
			return mediaType
		}
		return "application/octet-stream"
	}
}
