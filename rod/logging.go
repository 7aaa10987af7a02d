package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkaminski/websave"
)

// Ensure LoggingRenderer implements websave.PDFRenderer.
var _ websave.PDFRenderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a PDFRenderer with debug logging.
type LoggingRenderer struct {
	next   websave.PDFRenderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next websave.PDFRenderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// RenderPDF logs the URL being rendered and delegates to the wrapped
// renderer.
func (r *LoggingRenderer) RenderPDF(ctx context.Context, url string) (data []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render pdf",
			"url", url,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderPDF(ctx, url)
}

// RenderHTML logs the render and delegates to the wrapped renderer.
func (r *LoggingRenderer) RenderHTML(ctx context.Context, html string) (data []byte, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render html",
			"input_bytes", len(html),
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderHTML(ctx, html)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
