package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Document is a fetched page: parsed markup plus the URL it came from.
// The raw body is kept around for extractors that work on full markup.
type Document struct {
	URL  *url.URL
	Root *goquery.Document
	Body []byte
}

// NewDocument parses markup from r and associates it with rawURL.
// It is the constructor used by tests and offline classification.
func NewDocument(rawURL string, r io.Reader) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid document URL: %w", err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}
	root, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{URL: u, Root: root, Body: body}, nil
}

// Fetcher retrieves pages over HTTP with a fixed timeout and User-Agent.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. Redirects are followed by the underlying client.
func New(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves rawURL and returns its parsed Document. Transport
// failures and non-2xx statuses both report the page as unavailable.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status for %s: %d %s", rawURL, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return NewDocument(rawURL, resp.Body)
}
