// Package scraper orchestrates one crawl session: seed fetch, pagination
// traversal, then sequential fetch-extract-persist per discovered post.
package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"blogsmith/internal/config"
	"blogsmith/internal/models"
	"blogsmith/pkg/extractor"
	"blogsmith/pkg/fetcher"
	"blogsmith/pkg/frontier"
	"blogsmith/pkg/storage"
)

// Scraper holds the state of a single crawl run. It owns the visited set
// and the shared rate limiter; nothing here is process-global.
type Scraper struct {
	seedURL   string
	fetcher   *fetcher.Fetcher
	walker    *frontier.Walker
	extractor *extractor.Extractor
	store     *storage.Store
	limiter   *rate.Limiter
	logger    *log.Logger
	visited   map[string]bool
}

// New wires a Scraper for the given seed URL. The output directory is
// created here, before any network traffic.
func New(seedURL string, cfg *config.Config, logger *log.Logger) (*Scraper, error) {
	u, err := url.Parse(seedURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid seed URL %q", seedURL)
	}

	store, err := storage.New(cfg.Scraper.OutputDir, cfg.Scraper.MaxFilenameLen)
	if err != nil {
		return nil, err
	}

	f := fetcher.New(cfg.Scraper.Timeout, cfg.Scraper.UserAgent)
	limiter := rate.NewLimiter(rate.Every(cfg.Scraper.Delay), 1)

	return &Scraper{
		seedURL:   seedURL,
		fetcher:   f,
		walker:    frontier.New(f, limiter, cfg.Scraper.MaxPages, cfg.Scraper.MaxPosts, logger),
		extractor: extractor.New(cfg.Extractor.ReadabilityFallback),
		store:     store,
		limiter:   limiter,
		logger:    logger,
		visited:   make(map[string]bool),
	}, nil
}

// Run executes the crawl. Only a failed seed fetch aborts the run; a
// failed post fetch or write is logged and skipped.
func (s *Scraper) Run(ctx context.Context) (*models.ScrapeResult, error) {
	s.logger.Info("starting scrape", "url", s.seedURL)

	seed, err := s.fetcher.Fetch(ctx, s.seedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed page: %w", err)
	}

	walk, err := s.walker.Walk(ctx, seed)
	if err != nil {
		return nil, err
	}

	result := &models.ScrapeResult{
		SeedURL:      s.seedURL,
		PagesVisited: walk.PagesVisited,
		PostsFound:   len(walk.PostURLs),
	}
	s.logger.Info("frontier resolved", "posts", result.PostsFound, "pages", result.PagesVisited)

	for i, link := range walk.PostURLs {
		if s.visited[link] {
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return result, err
		}

		s.logger.Info("scraping post", "n", i+1, "of", result.PostsFound, "url", link)
		doc, err := s.fetcher.Fetch(ctx, link)
		if err != nil {
			s.logger.Warn("skipping post", "url", link, "err", err)
			result.Failures++
			continue
		}

		post := s.extractor.Extract(doc)
		path, err := s.store.Save(post)
		if err != nil {
			s.logger.Error("failed to save post", "url", link, "err", err)
			result.Failures++
			continue
		}

		s.visited[link] = true
		result.PostsScraped++
		s.logger.Info("saved post", "title", post.Title, "path", path)
	}

	s.logger.Info("scrape completed", "scraped", result.PostsScraped, "failures", result.Failures)
	return result, nil
}
