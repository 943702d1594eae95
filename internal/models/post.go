package models

// Post represents a single scraped blog post. Fields that no heuristic
// matched stay at their zero value; an all-empty post is still valid.
type Post struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Author     string   `json:"author"`
	Content    string   `json:"content"`
	RawHTML    string   `json:"raw_html"`
	Categories []string `json:"categories"`
}

// NewPost returns a Post for the given URL with empty field defaults.
func NewPost(url string) *Post {
	return &Post{
		URL:        url,
		Categories: []string{},
	}
}

// ScrapeResult contains the outcome of one scrape run.
type ScrapeResult struct {
	SeedURL      string `json:"seed_url"`
	PagesVisited int    `json:"pages_visited"`
	PostsFound   int    `json:"posts_found"`
	PostsScraped int    `json:"posts_scraped"`
	Failures     int    `json:"failures"`
}
