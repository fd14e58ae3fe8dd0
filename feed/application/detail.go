package application

import (
	"context"
	"strings"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/rs/zerolog/log"
)

// PostDetail is a single post prepared for reading.
type PostDetail struct {
	ID         int
	Title      string
	Date       string
	ImageURL   string
	AuthorName string
	// Category is the first embedded term, if the post has one.
	Category   *domain.Term
	Paragraphs []string
}

// Content joins the paragraphs with blank lines.
func (d *PostDetail) Content() string {
	return strings.Join(d.Paragraphs, "\n\n")
}

type PostDetailService struct {
	source domain.RemoteSource
}

func NewPostDetailService(source domain.RemoteSource) *PostDetailService {
	return &PostDetailService{source: source}
}

// GetPostDetail fetches a post live with full embedding.
func (s *PostDetailService) GetPostDetail(ctx context.Context, id int) (*PostDetail, error) {
	post, err := s.source.FetchPostByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int("postID", id).Msg("Failed to fetch post")
		return nil, err
	}

	detail := &PostDetail{
		ID:         post.ID,
		Title:      PlainText(post.Title.Rendered),
		Date:       post.Date,
		ImageURL:   post.BestImageURL(),
		AuthorName: post.AuthorName(),
		Paragraphs: []string{},
	}

	if term, ok := post.PrimaryTerm(); ok {
		detail.Category = &term
	}

	if post.Content != nil {
		detail.Paragraphs = Paragraphs(post.Content.Rendered)
	}

	return detail, nil
}
