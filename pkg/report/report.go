// Package report summarizes the records a scrape run left in its output
// directory.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"blogsmith/internal/models"
	"blogsmith/pkg/utils"
)

// Summary describes the scraped posts found in one output directory.
type Summary struct {
	Dir   string        `json:"dir"`
	Count int           `json:"count"`
	Posts []models.Post `json:"posts"`
}

// Reporter renders summaries of scraped output directories.
type Reporter struct{}

// New creates a new Reporter instance
func New() *Reporter {
	return &Reporter{}
}

// Generate reads every post record under dir and renders it in the
// given format ("text" or "json").
func (r *Reporter) Generate(dir string, format string) (string, error) {
	summary, err := r.load(dir)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		return r.generateJSON(summary)
	case "text":
		return r.generateText(summary)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// load collects the JSON records in dir, sorted by filename. Files that
// do not decode as post records are skipped.
func (r *Reporter) load(dir string) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	summary := &Summary{Dir: dir, Posts: []models.Post{}}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var post models.Post
		if err := json.Unmarshal(data, &post); err != nil {
			continue
		}
		summary.Posts = append(summary.Posts, post)
	}
	summary.Count = len(summary.Posts)

	return summary, nil
}

// generateJSON creates a JSON formatted summary
func (r *Reporter) generateJSON(summary *Summary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return string(data), nil
}

// generateText creates a plain text summary, one line per post
func (r *Reporter) generateText(summary *Summary) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d posts in %s\n", summary.Count, summary.Dir)
	for _, post := range summary.Posts {
		title := post.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&b, "  %-40s  %-12s  %s\n", utils.TruncateText(utils.CleanText(title), 40), post.Date, post.URL)
	}
	return b.String(), nil
}
