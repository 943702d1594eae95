// Package storage persists scraped posts as one JSON document each.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blogsmith/internal/models"
	"blogsmith/pkg/utils"
)

const fileExtension = ".json"

// Store writes post records into a single output directory.
type Store struct {
	dir        string
	maxNameLen int
}

// New creates the output directory if needed and returns a Store.
func New(dir string, maxNameLen int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Store{dir: dir, maxNameLen: maxNameLen}, nil
}

// Save writes post as an indented JSON document and returns the file
// path. Posts whose titles normalize to the same filename overwrite one
// another; the name is a pure function of title and URL.
func (s *Store) Save(post *models.Post) (string, error) {
	path := filepath.Join(s.dir, s.Filename(post))

	data, err := json.MarshalIndent(post, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode post %s: %w", post.URL, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Filename derives the filesystem-safe name for a post: the sanitized
// title, or the sanitized final URL path segment when the title is empty,
// truncated and suffixed with the fixed extension.
func (s *Store) Filename(post *models.Post) string {
	var name string
	if post.Title != "" {
		name = utils.SanitizeFilename(post.Title)
	} else {
		segments := strings.Split(post.URL, "/")
		name = utils.SanitizeFilename(segments[len(segments)-1])
		if name == "" {
			name = "post"
		}
	}
	return utils.TruncateText(name, s.maxNameLen) + fileExtension
}
