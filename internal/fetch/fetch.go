package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher downloads HTML documents for URL-based checks.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeouts, proxies) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with mock transport
type Fetcher struct {
	// client is the HTTP client used for requests.
	client *http.Client

	// userAgent is the User-Agent header to use for requests.
	userAgent string

	// maxBodySize limits the response body size to prevent memory exhaustion.
	// Default is 10MB.
	maxBodySize int64

	// timeout is the per-request timeout.
	timeout time.Duration

	// headers are extra HTTP headers added to every request, e.g. site
	// credentials from the config file.
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
// Default is 10MB to prevent memory exhaustion from large responses.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithHeaders sets extra HTTP headers added to every request. Audited
// sites behind authentication need their credential headers here.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// New creates a Fetcher. A nil client uses http.DefaultClient.
func New(client *http.Client, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client:      client,
		userAgent:   "screen-reader-check/1.0",
		maxBodySize: 10 * 1024 * 1024, // 10MB
		timeout:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the document at target and returns its body as a string.
// A missing scheme defaults to https. Non-2xx responses are errors: a
// check created from an error page would audit the wrong document.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for name, value := range f.headers {
		req.Header.Set(name, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch %s: status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read body of %s: %w", target, err)
	}

	return string(body), nil
}
