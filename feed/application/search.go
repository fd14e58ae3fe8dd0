package application

import (
	"strings"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"golang.org/x/text/cases"
)

// FilterPosts keeps the posts whose title or content contains query,
// ignoring case. A blank query keeps everything.
func FilterPosts(posts []*domain.Post, query string) []*domain.Post {
	if strings.TrimSpace(query) == "" {
		return posts
	}

	// Casers carry state and are not shared between calls.
	fold := cases.Fold()
	needle := fold.String(query)

	filtered := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(fold.String(p.Title), needle) ||
			strings.Contains(fold.String(p.Content), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
