package domain

import (
	"context"
)

// RemoteSource defines read access to the upstream WordPress site.
// This allows the application to be decoupled from a specific implementation.
type RemoteSource interface {
	// FetchPosts returns up to pageSize of the newest posts with only the
	// featured media embedded.
	FetchPosts(ctx context.Context, pageSize int) ([]RemotePost, error)

	// FetchPostsByCategory is FetchPosts filtered server-side by category.
	FetchPostsByCategory(ctx context.Context, categoryID int, pageSize int) ([]RemotePost, error)

	// FetchPostByID returns a single post with media and terms embedded.
	FetchPostByID(ctx context.Context, id int) (*RemotePost, error)

	// FetchCategories returns categories in upstream order.
	FetchCategories(ctx context.Context, pageSize int) ([]Category, error)
}
