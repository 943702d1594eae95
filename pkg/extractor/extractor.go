// Package extractor turns a fetched post page into a structured record by
// probing ordered, field-specific selector chains. Fields are independent:
// each chain stops at its first matching selector and a miss leaves the
// field empty rather than failing the record.
package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"

	"blogsmith/internal/models"
	"blogsmith/pkg/fetcher"
)

// fieldRule locates one candidate element for a field. When Attr is set
// the value is read from that attribute instead of the element's text,
// which is how meta-tag conventions carry their payload.
type fieldRule struct {
	Selector string
	Attr     string
}

var titleRules = []fieldRule{
	{Selector: "h1"},
	{Selector: "h1.post-title"},
	{Selector: "h1.entry-title"},
	{Selector: ".post-title"},
	{Selector: ".entry-title"},
	{Selector: "article h1"},
}

var dateRules = []fieldRule{
	{Selector: ".post-date"},
	{Selector: ".entry-date"},
	{Selector: ".published"},
	{Selector: "time"},
	{Selector: ".date"},
	{Selector: "meta[property='article:published_time']", Attr: "content"},
	{Selector: "span.date"},
	{Selector: ".post-meta time"},
}

var authorRules = []fieldRule{
	{Selector: ".author"},
	{Selector: ".entry-author"},
	{Selector: "a.author"},
	{Selector: ".post-author"},
	{Selector: "meta[name='author']", Attr: "content"},
	{Selector: ".author-name"},
	{Selector: ".byline"},
}

var categorySelectors = []string{
	".category", ".categories", ".tags", ".post-tags",
	".entry-tags", ".post-categories", "a[rel='category']",
}

var contentSelectors = []string{
	"article", ".post-content", ".entry-content",
	".content", ".post", ".blog-post", ".article-content",
}

// Extractor extracts post fields from parsed blog markup.
type Extractor struct {
	// readabilityFallback enables a generic article-extraction pass for
	// the content field when every content selector misses.
	readabilityFallback bool
}

// New creates an Extractor.
func New(readabilityFallback bool) *Extractor {
	return &Extractor{readabilityFallback: readabilityFallback}
}

// Extract produces a Post record for doc. It never fails: fields without
// a matching heuristic keep their empty defaults.
func (e *Extractor) Extract(doc *fetcher.Document) *models.Post {
	post := models.NewPost(doc.URL.String())

	post.Title = probe(doc.Root, titleRules)
	post.Date = probe(doc.Root, dateRules)
	post.Author = probe(doc.Root, authorRules)
	post.Categories = e.extractCategories(doc.Root)
	post.Content, post.RawHTML = e.extractContent(doc)

	return post
}

// probe applies rules in order and returns the first match's value.
func probe(root *goquery.Document, rules []fieldRule) string {
	for _, rule := range rules {
		sel := root.Find(rule.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		if rule.Attr != "" {
			value, _ := sel.Attr(rule.Attr)
			return value
		}
		return strings.TrimSpace(sel.Text())
	}
	return ""
}

// extractCategories collects the trimmed text of EVERY element matched by
// the first selector that has any, in document order.
func (e *Extractor) extractCategories(root *goquery.Document) []string {
	for _, selector := range categorySelectors {
		matches := root.Find(selector)
		if matches.Length() == 0 {
			continue
		}
		categories := make([]string, 0, matches.Length())
		matches.Each(func(_ int, sel *goquery.Selection) {
			categories = append(categories, strings.TrimSpace(sel.Text()))
		})
		return categories
	}
	return []string{}
}

// extractContent finds the first matching content container, strips
// script and style sub-elements from a detached copy, and returns the
// clean visible text alongside the serialized markup of the copy.
func (e *Extractor) extractContent(doc *fetcher.Document) (string, string) {
	for _, selector := range contentSelectors {
		container := doc.Root.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		clean := container.Clone()
		clean.Find("script, style").Remove()

		text := strings.TrimSpace(clean.Text())
		raw, err := goquery.OuterHtml(clean)
		if err != nil {
			raw = ""
		}
		return text, raw
	}

	if e.readabilityFallback {
		return e.readabilityContent(doc), ""
	}
	return "", ""
}

// readabilityContent runs trafilatura over the raw page body. It only
// feeds the content field; every other field keeps its selector result.
func (e *Extractor) readabilityContent(doc *fetcher.Document) string {
	result, err := trafilatura.Extract(bytes.NewReader(doc.Body), trafilatura.Options{
		OriginalURL: doc.URL,
	})
	if err != nil || result == nil {
		return ""
	}
	return strings.TrimSpace(result.ContentText)
}
