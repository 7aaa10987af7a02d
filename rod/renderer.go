package rod

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/mkaminski/websave"
)

// Ensure Renderer implements websave.PDFRenderer at compile time.
var _ websave.PDFRenderer = (*Renderer)(nil)

// DefaultSettleDelay is how long a loaded page is given for late
// JavaScript rendering before printing.
const DefaultSettleDelay = 2 * time.Second

// A4 paper with moderate margins, in inches.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.7
	marginInches      = 0.4
)

// Renderer prints web pages to PDF using headless Chrome.
// Each call renders in its own page, so Renderer is safe for
// concurrent use by multiple goroutines.
type Renderer struct {
	manager     *Manager
	settleDelay time.Duration
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSettleDelay overrides the post-load delay before printing.
func WithSettleDelay(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.settleDelay = d
	}
}

// NewRenderer creates a Renderer backed by the Manager. The Renderer
// does not own the Manager; callers close both.
func NewRenderer(manager *Manager, opts ...RendererOption) *Renderer {
	r := &Renderer{
		manager:     manager,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderPDF navigates to the URL, waits for the page to load and
// settle, and returns the printed PDF bytes.
func (r *Renderer) RenderPDF(ctx context.Context, rawURL string) ([]byte, error) {
	if err := validateRenderURL(rawURL); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(rawURL); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", rawURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", rawURL, err)
	}

	// Give late JavaScript a chance to render before printing.
	if r.settleDelay > 0 {
		select {
		case <-time.After(r.settleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	reader, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("printing %s: %w", rawURL, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}

	r.manager.PageDone()
	return data, nil
}

// RenderHTML prints a raw HTML document to PDF by staging it in a
// temporary file and rendering it over the file scheme.
func (r *Renderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	f, err := os.CreateTemp("", "websave-*.html")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}

	return r.RenderPDF(ctx, "file://"+f.Name())
}

// Close is a no-op; the Manager owns the browser.
func (r *Renderer) Close() error {
	return nil
}

// validateRenderURL rejects URLs the browser should not be pointed at.
// Only http, https, and file navigation is allowed.
func validateRenderURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return websave.Errorf(websave.EINVALID, "invalid url %q", rawURL)
	}
	switch u.Scheme {
	case "http", "https", "file":
		return nil
	default:
		return websave.Errorf(websave.EINVALID, "unsupported url scheme %q", u.Scheme)
	}
}

// printOptions returns the Chrome print settings for every render.
func printOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
