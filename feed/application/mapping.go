package application

import "github.com/dfryer1193/bghfeed/feed/domain"

// toCachedPost maps a remote post onto the cached feed entry shape.
func toCachedPost(rp *domain.RemotePost) *domain.Post {
	content := ""
	if rp.Excerpt != nil {
		content = PlainText(rp.Excerpt.Rendered)
	}

	return &domain.Post{
		ID:         rp.ID,
		Title:      PlainText(rp.Title.Rendered),
		Content:    content,
		Date:       rp.PublishedDate(),
		ImageURL:   rp.BestImageURL(),
		AuthorName: rp.AuthorName(),
	}
}

func toCachedPosts(remote []domain.RemotePost) []*domain.Post {
	posts := make([]*domain.Post, 0, len(remote))
	for i := range remote {
		posts = append(posts, toCachedPost(&remote[i]))
	}
	return posts
}
