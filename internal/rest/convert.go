package rest

import (
	"github.com/dfryer1193/bghfeed/api"
	"github.com/dfryer1193/bghfeed/feed/application"
	"github.com/dfryer1193/bghfeed/feed/domain"
)

func toAPIPosts(posts []*domain.Post) []api.Post {
	out := make([]api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, api.Post{
			ID:         p.ID,
			Title:      p.Title,
			Content:    p.Content,
			Date:       p.Date,
			ImageURL:   p.ImageURL,
			AuthorName: p.AuthorName,
		})
	}
	return out
}

func toAPICategories(categories []domain.Category) []api.Category {
	out := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, api.Category(c))
	}
	return out
}

func toAPIFeedPage(page *application.FeedPage) api.FeedPage {
	out := api.FeedPage{
		Posts:         toAPIPosts(page.Posts),
		TopCategories: toAPICategories(page.TopCategories),
		CategoryID:    page.CategoryID,
		Query:         page.Query,
		Stale:         page.Stale,
	}
	if page.RefreshError != nil {
		out.RefreshError = page.RefreshError.Error()
	}
	return out
}

func toAPIPostDetail(detail *application.PostDetail) api.PostDetail {
	out := api.PostDetail{
		ID:         detail.ID,
		Title:      detail.Title,
		Date:       detail.Date,
		ImageURL:   detail.ImageURL,
		AuthorName: detail.AuthorName,
		Paragraphs: detail.Paragraphs,
		Content:    detail.Content(),
	}
	if detail.Category != nil {
		out.Category = &api.CategoryRef{
			ID:   detail.Category.ID,
			Name: detail.Category.Name,
			Slug: detail.Category.Slug,
		}
	}
	return out
}
