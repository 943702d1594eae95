// Package frontier drives bounded breadth-first traversal of a blog's
// pagination, accumulating the candidate post URLs for one crawl.
package frontier

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"blogsmith/pkg/classifier"
	"blogsmith/pkg/fetcher"
)

// Fetcher retrieves a page for the walker. *fetcher.Fetcher satisfies it;
// tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Document, error)
}

// Walker traverses pagination pages sequentially, merging discovered
// links until the queue drains or the page limit is reached.
type Walker struct {
	fetcher  Fetcher
	limiter  *rate.Limiter
	logger   *log.Logger
	maxPages int
	maxPosts int
}

// Result is the terminal frontier state of one traversal.
type Result struct {
	// PostURLs is capped at maxPosts, deduplicated, in discovery order.
	PostURLs []string

	// PagesVisited counts every attempted listing page, seed included,
	// whether or not its fetch succeeded.
	PagesVisited int
}

// New creates a Walker. The limiter is shared with the post-scraping
// phase so the inter-request delay throttles the whole run.
func New(f Fetcher, limiter *rate.Limiter, maxPages, maxPosts int, logger *log.Logger) *Walker {
	return &Walker{
		fetcher:  f,
		limiter:  limiter,
		logger:   logger,
		maxPages: maxPages,
		maxPosts: maxPosts,
	}
}

// Walk classifies the seed document and follows pagination links
// breadth-first. A failed pagination fetch is logged, counted against the
// page limit and skipped; it never aborts the traversal.
func (w *Walker) Walk(ctx context.Context, seed *fetcher.Document) (*Result, error) {
	posts := []string{}
	knownPosts := make(map[string]bool)
	merge := func(urls []string) {
		for _, u := range urls {
			if !knownPosts[u] {
				knownPosts[u] = true
				posts = append(posts, u)
			}
		}
	}

	queue := []string{}
	knownPages := make(map[string]bool)
	enqueue := func(urls []string) {
		for _, u := range urls {
			if !knownPages[u] {
				knownPages[u] = true
				queue = append(queue, u)
			}
		}
	}

	merge(classifier.PostLinks(seed))
	enqueue(classifier.PaginationLinks(seed))

	visited := 1 // the seed listing page
	for len(queue) > 0 && visited < w.maxPages {
		next := queue[0]
		queue = queue[1:]
		visited++

		if err := w.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		w.logger.Info("fetching pagination page", "url", next)
		doc, err := w.fetcher.Fetch(ctx, next)
		if err != nil {
			w.logger.Warn("skipping pagination page", "url", next, "err", err)
			continue
		}

		merge(classifier.PostLinks(doc))
		enqueue(classifier.PaginationLinks(doc))
	}

	if len(posts) > w.maxPosts {
		posts = posts[:w.maxPosts]
	}

	return &Result{PostURLs: posts, PagesVisited: visited}, nil
}
