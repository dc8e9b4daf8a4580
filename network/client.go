// Package network fetches the documents and external scripts vibeui opens:
// local files, data: URLs and http(s) resources.
package network

import (
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/publicsuffix"
)

// tracer traces with key 'vibeui.network'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.network")
}

// Client is an HTTP client with a cookie jar. Cookies set by a document
// are sent with the scripts it loads.
type Client struct {
	httpClient   *http.Client
	jar          http.CookieJar
	timeout      time.Duration
	maxRedirects int
	userAgent    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMaxRedirects sets the maximum number of redirects to follow.
func WithMaxRedirects(n int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client. Defaults: 30s timeout, 10 redirects.
func NewClient(opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		jar:          jar,
		timeout:      30 * time.Second,
		maxRedirects: 10,
		userAgent:    "vibeui/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   c.timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
	c.httpClient = &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   c.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= c.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", c.maxRedirects)
			}
			return nil
		},
	}
	return c, nil
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	ContentType string
	URL         *url.URL // final URL after redirects
}

// Get fetches urlStr and reads the whole body, decoding gzip.
func (c *Client) Get(ctx context.Context, urlStr string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html, application/javascript, */*")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", urlStr, err)
		}
		defer gz.Close()
		reader = gz
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", urlStr, err)
	}
	tracer().Debugf("GET %s: %d, %d bytes", urlStr, resp.StatusCode, len(body))

	return &Response{
		StatusCode:  resp.StatusCode,
		Headers:     resp.Header,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         resp.Request.URL,
	}, nil
}

// Cookies returns the cookies the jar holds for u.
func (c *Client) Cookies(u *url.URL) []*http.Cookie {
	return c.jar.Cookies(u)
}

// ParseContentType splits a Content-Type header into its lowercased media
// type and charset.
func ParseContentType(contentType string) (mediaType, charset string) {
	if strings.TrimSpace(contentType) == "" {
		return "application/octet-stream", ""
	}
	parts := strings.Split(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(parts[0]))
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(key, "charset") {
			charset = strings.ToLower(strings.Trim(value, `"`))
			break
		}
	}
	return mediaType, charset
}

// IsHTMLContentType reports whether contentType is an HTML media type.
func IsHTMLContentType(contentType string) bool {
	mediaType, _ := ParseContentType(contentType)
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// IsJavaScriptContentType reports whether contentType is a script media type.
func IsJavaScriptContentType(contentType string) bool {
	mediaType, _ := ParseContentType(contentType)
	switch mediaType {
	case "text/javascript", "application/javascript", "application/x-javascript":
		return true
	}
	return false
}
