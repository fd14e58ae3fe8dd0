package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDetailService_GetPostDetail(t *testing.T) {
	source := &fakeSource{detail: &domain.RemotePost{
		ID:      42,
		Date:    "2024-05-05T14:00:00",
		DateGMT: "2024-05-05T12:00:00",
		Title:   domain.Rendered{Rendered: "Worlds &amp; more"},
		Content: &domain.Rendered{Rendered: "<p>First.</p>\n<p>Second.</p>"},
		Yoast:   &domain.YoastHead{TwitterMisc: &domain.TwitterMisc{WrittenBy: " Marko "}},
		Embedded: &domain.Embedded{
			Media: []domain.Media{{SourceURL: "https://cdn/full.jpg"}},
			Terms: [][]domain.Term{
				{},
				{{ID: 7, Name: "Esports", Slug: "esports", Taxonomy: "category"}},
				{{ID: 99, Name: "tag", Slug: "tag", Taxonomy: "post_tag"}},
			},
		},
	}}
	svc := NewPostDetailService(source)

	detail, err := svc.GetPostDetail(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 42, detail.ID)
	assert.Equal(t, "Worlds & more", detail.Title)
	assert.Equal(t, "2024-05-05T14:00:00", detail.Date)
	assert.Equal(t, "https://cdn/full.jpg", detail.ImageURL)
	assert.Equal(t, "Marko", detail.AuthorName)
	require.NotNil(t, detail.Category)
	assert.Equal(t, 7, detail.Category.ID)
	assert.Equal(t, "Esports", detail.Category.Name)
	assert.Equal(t, []string{"First.", "Second."}, detail.Paragraphs)
	assert.Equal(t, "First.\n\nSecond.", detail.Content())
}

func TestPostDetailService_MinimalPost(t *testing.T) {
	source := &fakeSource{detail: &domain.RemotePost{ID: 1, Title: domain.Rendered{Rendered: "Bare"}}}
	svc := NewPostDetailService(source)

	detail, err := svc.GetPostDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, detail.Category)
	assert.Empty(t, detail.ImageURL)
	assert.Equal(t, domain.DefaultAuthorName, detail.AuthorName)
	assert.NotNil(t, detail.Paragraphs)
	assert.Empty(t, detail.Paragraphs)
}

func TestPostDetailService_NotFound(t *testing.T) {
	source := &fakeSource{detailErr: fmt.Errorf("wordpress: getting post 5 failed: %w", domain.ErrNotFound)}
	svc := NewPostDetailService(source)

	detail, err := svc.GetPostDetail(context.Background(), 5)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
