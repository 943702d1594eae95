// Package classifier discovers post and pagination links in blog markup
// using ordered heuristic selector chains. The selectors encode common
// blogging-platform conventions; no site-specific configuration exists.
package classifier

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blogsmith/pkg/fetcher"
)

// postLinkSelectors mark anchors that conventionally point at blog posts.
// Order carries no priority: every selector with at least one hit
// contributes all of its matches.
var postLinkSelectors = []string{
	"article a", ".post a", ".blog-post a", ".entry a",
	".post-title a", ".blog-entry a", ".post-link", ".blog-title a",
	"a.post-link", "a.read-more", "a.more-link", "h2 a", "h1 a", "h3 a",
}

// paginationSelectors mark anchors that lead to further listing pages.
// No fallback exists for pagination; a page without any is terminal.
var paginationSelectors = []string{
	".pagination a", ".nav-links a", ".page-numbers",
	"a.page-link", ".pager a", ".pages a",
	"a[rel='next']", "a.next",
}

// slugPatterns match conventional post URL paths. They are the fallback
// when no structural selector finds anything at all.
var slugPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/(post|blog|article|entry)/[a-zA-Z0-9-]+/?$`),
	regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/[a-zA-Z0-9-]+/?$`),
	regexp.MustCompile(`/blog/[a-zA-Z0-9-]+/?$`),
}

// PostLinks returns the absolute, same-domain post URLs discovered in doc,
// deduplicated in first-seen order. When the whole selector chain yields
// nothing, every anchor on the page is tested against slugPatterns instead.
func PostLinks(doc *fetcher.Document) []string {
	links := newLinkSet(doc.URL)

	for _, selector := range postLinkSelectors {
		doc.Root.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			links.add(sel)
		})
	}

	if links.empty() {
		doc.Root.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			links.addMatching(sel, slugPatterns)
		})
	}

	return links.urls
}

// PaginationLinks returns the absolute, same-domain pagination URLs
// discovered in doc, deduplicated in first-seen order.
func PaginationLinks(doc *fetcher.Document) []string {
	links := newLinkSet(doc.URL)

	for _, selector := range paginationSelectors {
		doc.Root.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			links.add(sel)
		})
	}

	return links.urls
}

// linkSet accumulates same-domain absolute URLs with set semantics while
// preserving the order links were first seen in.
type linkSet struct {
	base *url.URL
	seen map[string]bool
	urls []string
}

func newLinkSet(base *url.URL) *linkSet {
	return &linkSet{base: base, seen: make(map[string]bool), urls: []string{}}
}

// add resolves sel's href and records it if it passes the link filters.
func (ls *linkSet) add(sel *goquery.Selection) {
	if resolved, ok := ls.resolve(sel); ok {
		ls.insert(resolved)
	}
}

// addMatching records sel's href only if its resolved path matches one of
// the given patterns.
func (ls *linkSet) addMatching(sel *goquery.Selection, patterns []*regexp.Regexp) {
	resolved, ok := ls.resolve(sel)
	if !ok {
		return
	}
	for _, pattern := range patterns {
		if pattern.MatchString(resolved) {
			ls.insert(resolved)
			return
		}
	}
}

// resolve turns an anchor's href into an absolute same-domain URL.
// Fragment-only and script-protocol hrefs never make it into the set,
// and cross-domain links are discarded silently.
func (ls *linkSet) resolve(sel *goquery.Selection) (string, bool) {
	href, exists := sel.Attr("href")
	if !exists || href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := ls.base.ResolveReference(ref)
	if resolved.Host != ls.base.Host {
		return "", false
	}
	return resolved.String(), true
}

func (ls *linkSet) insert(u string) {
	if !ls.seen[u] {
		ls.seen[u] = true
		ls.urls = append(ls.urls, u)
	}
}

func (ls *linkSet) empty() bool {
	return len(ls.urls) == 0
}
