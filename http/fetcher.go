// Package http provides an HTTP-based implementation of websave.Fetcher
// for the Markdown pipeline, where static HTML is enough and a browser
// would be wasted.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mkaminski/websave"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// userAgent identifies the tool to origin servers. Some sites reject
// requests without a browser-like agent string.
const userAgent = "Mozilla/5.0 (compatible; websave/1.0)"

// Ensure Fetcher implements websave.Fetcher at compile time.
var _ websave.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents over plain HTTP. It does not
// execute JavaScript; pages that need a browser go through the PDF
// renderer instead.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", websave.Errorf(websave.EINVALID, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", websave.Errorf(websave.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", websave.Errorf(websave.EUNAUTHORIZED, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", websave.Errorf(websave.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. A no-op for the HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}
