package mock

import (
	"context"

	"github.com/mkaminski/websave"
)

var _ websave.PDFRenderer = (*PDFRenderer)(nil)

// PDFRenderer is a mock implementation of websave.PDFRenderer.
type PDFRenderer struct {
	RenderPDFFn  func(ctx context.Context, url string) ([]byte, error)
	RenderHTMLFn func(ctx context.Context, html string) ([]byte, error)
	CloseFn      func() error
}

func (r *PDFRenderer) RenderPDF(ctx context.Context, url string) ([]byte, error) {
	return r.RenderPDFFn(ctx, url)
}

func (r *PDFRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	return r.RenderHTMLFn(ctx, html)
}

func (r *PDFRenderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ websave.MarkdownRenderer = (*MarkdownRenderer)(nil)

// MarkdownRenderer is a mock implementation of websave.MarkdownRenderer.
type MarkdownRenderer struct {
	RenderMarkdownFn func(ctx context.Context, url string) (string, error)
	FromHTMLFn       func(html, sourceURL string) (string, error)
}

func (r *MarkdownRenderer) RenderMarkdown(ctx context.Context, url string) (string, error) {
	return r.RenderMarkdownFn(ctx, url)
}

func (r *MarkdownRenderer) FromHTML(html, sourceURL string) (string, error) {
	return r.FromHTMLFn(html, sourceURL)
}
