package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogsmith/pkg/fetcher"
)

func parseDoc(t *testing.T, url, html string) *fetcher.Document {
	t.Helper()
	doc, err := fetcher.NewDocument(url, strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractFullPost(t *testing.T) {
	doc := parseDoc(t, "https://example.com/blog/launch", `
		<html><head>
		<meta property="article:published_time" content="2024-01-01">
		</head><body>
		<h1>Title</h1>
		<span class="author-name">Jane Roe</span>
		<a rel="category" href="/cat/go">Go</a>
		<a rel="category" href="/cat/web">Web</a>
		<div class="entry-content">
			<script>track();</script>
			<p>First paragraph.</p>
			<p>Second paragraph.</p>
		</div>
		</body></html>
	`)

	post := New(false).Extract(doc)

	assert.Equal(t, "https://example.com/blog/launch", post.URL)
	assert.Equal(t, "Title", post.Title)
	assert.Equal(t, "2024-01-01", post.Date)
	assert.Equal(t, "Jane Roe", post.Author)
	assert.Equal(t, []string{"Go", "Web"}, post.Categories)
	assert.Contains(t, post.Content, "First paragraph.")
	assert.Contains(t, post.Content, "Second paragraph.")
	assert.NotContains(t, post.Content, "track()")
	assert.NotContains(t, post.RawHTML, "track()")
	assert.Contains(t, post.RawHTML, "<p>First paragraph.</p>")
}

func TestExtractFieldIndependence(t *testing.T) {
	// No date markup at all: date stays empty, the rest still extracts.
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><body>
		<h1>Only A Title</h1>
		</body></html>
	`)

	post := New(false).Extract(doc)

	assert.Equal(t, "Only A Title", post.Title)
	assert.Empty(t, post.Date)
	assert.Empty(t, post.Author)
	assert.Empty(t, post.Content)
	assert.Empty(t, post.RawHTML)
	assert.Empty(t, post.Categories)
}

func TestExtractEmptyDefaults(t *testing.T) {
	doc := parseDoc(t, "https://example.com/blog/empty", `<html><body></body></html>`)

	post := New(false).Extract(doc)

	assert.Equal(t, "https://example.com/blog/empty", post.URL)
	assert.Empty(t, post.Title)
	assert.Empty(t, post.Date)
	assert.Empty(t, post.Author)
	assert.Empty(t, post.Content)
	assert.Empty(t, post.RawHTML)
	assert.NotNil(t, post.Categories)
	assert.Empty(t, post.Categories)
}

func TestExtractFirstSelectorWins(t *testing.T) {
	// .post-date sits earlier in the date chain than the time element.
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><body>
		<h1>Post</h1>
		<span class="post-date">March 1, 2024</span>
		<time datetime="2023-12-31">Dec 31, 2023</time>
		</body></html>
	`)

	post := New(false).Extract(doc)

	assert.Equal(t, "March 1, 2024", post.Date)
}

func TestExtractDateFromTextElement(t *testing.T) {
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><body>
		<time datetime="2024-02-02">  February 2, 2024  </time>
		</body></html>
	`)

	post := New(false).Extract(doc)

	// Text content, trimmed; the datetime attribute is not consulted.
	assert.Equal(t, "February 2, 2024", post.Date)
}

func TestExtractAuthorFromMeta(t *testing.T) {
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><head>
		<meta name="author" content="John Smith">
		</head><body><h1>Post</h1></body></html>
	`)

	post := New(false).Extract(doc)

	assert.Equal(t, "John Smith", post.Author)
}

func TestExtractCategoriesDocumentOrder(t *testing.T) {
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><body>
		<span class="category"> alpha </span>
		<span class="category">beta</span>
		<span class="category">gamma </span>
		<a rel="category" href="/c/ignored">Ignored</a>
		</body></html>
	`)

	post := New(false).Extract(doc)

	// Only the first matching selector contributes; its matches come in
	// document order with trimmed text.
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, post.Categories)
}

func TestExtractContentSelectorPriority(t *testing.T) {
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><body>
		<article><p>From the article element.</p></article>
		<div class="entry-content"><p>From the entry content.</p></div>
		</body></html>
	`)

	post := New(false).Extract(doc)

	assert.Contains(t, post.Content, "From the article element.")
	assert.NotContains(t, post.Content, "From the entry content.")
}

func TestExtractContentKeepsDocumentIntact(t *testing.T) {
	// Script removal operates on a copy; reclassifying the same document
	// afterwards still sees the original markup.
	doc := parseDoc(t, "https://example.com/blog/a", `
		<html><body>
		<div class="post-content"><script>x()</script><p>Body</p></div>
		</body></html>
	`)

	e := New(false)
	first := e.Extract(doc)
	second := e.Extract(doc)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.RawHTML, second.RawHTML)
	assert.Equal(t, 1, doc.Root.Find("script").Length())
}
