package goquery_test

import (
	"testing"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements websave.Extractor at compile time.
var _ websave.Extractor = (*goquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers main over body", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav>Navigation</nav>
<main><h1>Docs</h1><p>Main content here.</p></main>
<footer>Footer</footer>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Main content here.")
		assert.NotContains(t, result.ContentHTML, "Navigation")
	})

	t.Run("falls through to article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<article><p>Article body.</p></article>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Article body.")
	})

	t.Run("matches content classes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="sidebar">Links</div>
<div class="post-content"><p>The post itself.</p></div>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "The post itself.")
		assert.NotContains(t, result.ContentHTML, "Links")
	})

	t.Run("matches content id", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div id="content"><p>By id.</p></div>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "By id.")
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Nothing but paragraphs.</p></body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Nothing but paragraphs.")
	})

	t.Run("title prefers h1", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Tab Title</title></head>
<body><main><h1>Page Heading</h1></main></body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Page Heading", result.Title)
	})

	t.Run("title falls back to title tag", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Tab Title</title></head>
<body><main><p>No heading.</p></main></body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Tab Title", result.Title)
	})

	t.Run("title falls back to og:title meta", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="OG Title"></head>
<body><main><p>Body.</p></main></body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "OG Title", result.Title)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, websave.EINVALID, websave.ErrorCode(err))
	})
}
