package domain

import (
	"context"
)

// Post represents a cached feed entry.
// Posts are written only by the synchronizer, which replaces the whole cache
// generation at once after a successful refresh.
type Post struct {
	ID         int
	Title      string
	Content    string
	Date       string
	ImageURL   string
	AuthorName string
}

// PostRepository is the local post cache.
type PostRepository interface {
	// GetAll returns every cached post ordered by date, newest first.
	GetAll(ctx context.Context) ([]*Post, error)

	// ReplaceAll clears the cache and inserts posts as one atomic transition.
	ReplaceAll(ctx context.Context, posts []*Post) error
}
