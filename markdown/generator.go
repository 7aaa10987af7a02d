// Package markdown assembles the fetch, extract, and convert stages
// into a websave.MarkdownRenderer.
package markdown

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkaminski/websave"
)

// Ensure Generator implements websave.MarkdownRenderer at compile time.
var _ websave.MarkdownRenderer = (*Generator)(nil)

// fallbackTitle is used when no title can be extracted from the page.
const fallbackTitle = "Untitled"

// Generator produces Markdown documents from web pages. The zero value
// is not usable; all three stages must be set.
type Generator struct {
	Fetcher   websave.Fetcher
	Extractor websave.Extractor
	Converter websave.Converter
}

// NewGenerator creates a Generator from its three stages.
func NewGenerator(fetcher websave.Fetcher, extractor websave.Extractor, converter websave.Converter) *Generator {
	return &Generator{
		Fetcher:   fetcher,
		Extractor: extractor,
		Converter: converter,
	}
}

// RenderMarkdown fetches the URL and returns its main content as
// Markdown, prefixed with a source attribution header.
func (g *Generator) RenderMarkdown(ctx context.Context, url string) (string, error) {
	html, err := g.Fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	return g.FromHTML(html, url)
}

// FromHTML converts already-fetched HTML to Markdown. sourceURL, if
// non-empty, is recorded in the attribution header.
func (g *Generator) FromHTML(html, sourceURL string) (string, error) {
	extracted, err := g.Extractor.Extract(html)
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}

	body, err := g.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}

	if sourceURL == "" {
		return body, nil
	}

	title := strings.TrimSpace(extracted.Title)
	if title == "" {
		title = fallbackTitle
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "*Source: [%s](%s)*\n\n", sourceURL, sourceURL)
	sb.WriteString("---\n\n")
	sb.WriteString(body)
	return sb.String(), nil
}
