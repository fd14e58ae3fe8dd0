// Package api holds the JSON shapes served by the feed API.
package api

type Post struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Date       string `json:"date"`
	ImageURL   string `json:"image_url,omitempty"`
	AuthorName string `json:"author_name"`
}

type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Slug  string `json:"slug"`
}

type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type FeedPage struct {
	Posts         []Post     `json:"posts"`
	TopCategories []Category `json:"top_categories"`
	CategoryID    int        `json:"category_id,omitempty"`
	Query         string     `json:"query,omitempty"`
	Stale         bool       `json:"stale"`
	RefreshError  string     `json:"refresh_error,omitempty"`
}

// Snapshot is one line of the NDJSON post stream.
type Snapshot struct {
	Origin string `json:"origin"`
	Posts  []Post `json:"posts"`
}

// StreamError terminates a post stream whose refresh failed.
type StreamError struct {
	Error string `json:"error"`
}

type PostDetail struct {
	ID         int          `json:"id"`
	Title      string       `json:"title"`
	Date       string       `json:"date"`
	ImageURL   string       `json:"image_url,omitempty"`
	AuthorName string       `json:"author_name"`
	Category   *CategoryRef `json:"category,omitempty"`
	Paragraphs []string     `json:"paragraphs"`
	Content    string       `json:"content"`
}

type Error struct {
	Error string `json:"error"`
}
