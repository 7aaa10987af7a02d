package websave

import "context"

// Fetcher retrieves HTML from URLs for the Markdown pipeline.
type Fetcher interface {
	// Fetch retrieves the HTML document at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
