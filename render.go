package websave

import "context"

// PDFRenderer renders a URL or raw HTML into PDF bytes.
// Implementations are safe for concurrent use; each call renders in an
// isolated browser page. The context controls timeout and cancellation.
type PDFRenderer interface {
	// RenderPDF navigates to the URL, waits for the page to settle,
	// and returns the printed PDF bytes.
	RenderPDF(ctx context.Context, url string) ([]byte, error)

	// RenderHTML renders a raw HTML document to PDF bytes.
	RenderHTML(ctx context.Context, html string) ([]byte, error)

	// Close releases browser resources.
	// Must be called when the renderer is no longer needed.
	Close() error
}

// MarkdownRenderer converts a URL or raw HTML into Markdown text.
type MarkdownRenderer interface {
	// RenderMarkdown fetches the URL and returns its main content as
	// Markdown with a source attribution header.
	RenderMarkdown(ctx context.Context, url string) (string, error)

	// FromHTML converts already-fetched HTML the same way. sourceURL,
	// if non-empty, is recorded in the attribution header.
	FromHTML(html, sourceURL string) (string, error)
}
