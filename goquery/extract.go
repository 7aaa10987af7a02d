// Package goquery provides a selector-based websave.Extractor. Instead
// of readability heuristics it walks a fixed cascade of tags, classes,
// and ids that cover most article and documentation layouts. Useful
// when the readability engine strips too much.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkaminski/websave"
)

// Ensure Extractor implements websave.Extractor at compile time.
var _ websave.Extractor = (*Extractor)(nil)

// Content selectors in order of preference.
var contentSelectors = []string{
	"main",
	"article",
	".main-content",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	"#content",
}

// Title selectors tried after the h1/title tags and meta properties.
var titleClassSelectors = []string{
	".title",
	".post-title",
	".entry-title",
	".article-title",
}

// Extractor extracts main content by CSS selector cascade.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract picks the first matching content container and returns its
// HTML along with the page title. Falls back to the body, then to the
// whole document.
func (e *Extractor) Extract(rawHTML string) (*websave.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, websave.Errorf(websave.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	return &websave.ExtractResult{
		Title:       extractTitle(doc),
		ContentHTML: extractContent(doc, rawHTML),
	}, nil
}

func extractContent(doc *goquery.Document, rawHTML string) string {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if html, err := goquery.OuterHtml(sel); err == nil {
			return html
		}
	}

	body := doc.Find("body").First()
	if body.Length() > 0 {
		if html, err := goquery.OuterHtml(body); err == nil {
			return html
		}
	}

	return rawHTML
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range []string{"h1", "title"} {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	for _, selector := range []string{`meta[property="og:title"]`, `meta[name="twitter:title"]`} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok && content != "" {
			return content
		}
	}

	for _, selector := range titleClassSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	return ""
}
