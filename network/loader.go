package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"
)

// Resource is a loaded document or script.
type Resource struct {
	URL         string
	Content     []byte
	ContentType string
	Charset     string
	StatusCode  int
	Cached      bool
}

// String returns the content as text.
func (r *Resource) String() string {
	return string(r.Content)
}

var (
	// ErrStatus is returned for HTTP responses outside 2xx/3xx.
	ErrStatus = errors.New("network: unsuccessful status")
	// ErrScheme is returned for URLs the loader cannot fetch.
	ErrScheme = errors.New("network: unsupported URL scheme")
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache sets the response cache.
func WithCache(cache *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = cache
	}
}

// WithBaseURL sets the URL relative references resolve against.
func WithBaseURL(base string) LoaderOption {
	return func(l *Loader) {
		l.baseURL = base
	}
}

// Loader resolves references against the current document's URL and
// fetches them. Without a base URL, relative references are local paths.
type Loader struct {
	client  *Client
	cache   *Cache
	baseURL string

	mu sync.RWMutex
}

// NewLoader creates a loader. client may be nil if only local files and
// data: URLs are loaded.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		cache:  NewCache(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BaseURL returns the URL relative references resolve against.
func (l *Loader) BaseURL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baseURL
}

// SetBaseURL sets the URL relative references resolve against.
func (l *Loader) SetBaseURL(base string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseURL = base
}

// Resolve returns the absolute URL for ref.
func (l *Loader) Resolve(ref string) (string, error) {
	if IsDataURL(ref) || IsAbsoluteURL(ref) {
		return ref, nil
	}
	base := l.BaseURL()
	if base == "" {
		return FileURL(ref)
	}
	return ResolveURL(base, ref)
}

// Load fetches ref.
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	if IsDataURL(ref) {
		return loadDataURL(ref)
	}
	resolved, err := l.Resolve(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", ref, err)
	}
	u, err := url.Parse(resolved)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", ref, err)
	}

	switch u.Scheme {
	case "file":
		return loadFile(u)
	case "http", "https":
		return l.loadHTTP(ctx, resolved)
	}
	return nil, fmt.Errorf("%w: %s", ErrScheme, resolved)
}

// LoadDocument fetches a document and makes its URL the base for later
// loads.
func (l *Loader) LoadDocument(ctx context.Context, ref string) (*Resource, error) {
	res, err := l.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !IsDataURL(res.URL) {
		l.SetBaseURL(res.URL)
	}
	tracer().Infof("loaded document %s (%s, %d bytes)", res.URL, res.ContentType, len(res.Content))
	return res, nil
}

// LoadScript fetches a script's source.
func (l *Loader) LoadScript(ctx context.Context, src string) (string, error) {
	res, err := l.Load(ctx, src)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

func loadDataURL(ref string) (*Resource, error) {
	data, err := ParseDataURL(ref)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:         ref,
		Content:     data.Data,
		ContentType: data.MediaType,
		Charset:     data.Charset,
		StatusCode:  200,
	}, nil
}

func loadFile(u *url.URL) (*Resource, error) {
	content, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", u, err)
	}
	return &Resource{
		URL:         u.String(),
		Content:     content,
		ContentType: GuessContentType(u.Path),
		StatusCode:  200,
	}, nil
}

func (l *Loader) loadHTTP(ctx context.Context, urlStr string) (*Resource, error) {
	if entry, ok := l.cache.Get(urlStr); ok {
		res := responseResource(urlStr, entry.Response)
		res.Cached = true
		return res, nil
	}
	if l.client == nil {
		return nil, fmt.Errorf("%w: %s (no HTTP client)", ErrScheme, urlStr)
	}
	resp, err := l.client.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, urlStr, resp.StatusCode)
	}
	l.cache.Set(urlStr, resp)
	return responseResource(urlStr, resp), nil
}

func responseResource(urlStr string, resp *Response) *Resource {
	mediaType, charset := ParseContentType(resp.ContentType)
	if resp.URL != nil {
		urlStr = resp.URL.String()
	}
	return &Resource{
		URL:         urlStr,
		Content:     resp.Body,
		ContentType: mediaType,
		Charset:     charset,
		StatusCode:  resp.StatusCode,
	}
}
