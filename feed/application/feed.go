package application

import (
	"context"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FeedRequest selects what a feed page shows.
type FeedRequest struct {
	// CategoryID selects a live category view; zero means the cached general feed.
	CategoryID int
	Query      string
	Refresh    bool
}

// FeedPage is one rendered state of the news feed.
type FeedPage struct {
	Posts         []*domain.Post
	TopCategories []domain.Category
	CategoryID    int
	Query         string
	// Stale is set when the posts come from the cache without a successful refresh.
	Stale        bool
	RefreshError error
}

// Feed assembles feed pages from the synchronizer and the category service.
type Feed struct {
	sync       *PostSynchronizer
	categories *CategoryService
	cfg        *FeedConfig
}

func NewFeed(sync *PostSynchronizer, categories *CategoryService, cfg *FeedConfig) *Feed {
	return &Feed{
		sync:       sync,
		categories: categories,
		cfg:        cfg,
	}
}

// Load builds a feed page. Posts and top categories are loaded concurrently;
// upstream failures degrade the page instead of failing it. Only context
// cancellation is returned as an error.
func (f *Feed) Load(ctx context.Context, req FeedRequest) (*FeedPage, error) {
	page := &FeedPage{
		CategoryID:    req.CategoryID,
		Query:         req.Query,
		TopCategories: []domain.Category{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		top, err := f.categories.Top(gctx, f.cfg.TopCategories)
		if err != nil {
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Warn().Err(err).Msg("Loading feed without categories")
			return nil
		}
		page.TopCategories = top
		return nil
	})

	var (
		posts        []*domain.Post
		stale        bool
		refreshError error
	)
	g.Go(func() error {
		if req.CategoryID > 0 {
			categoryPosts, err := f.sync.FetchByCategory(gctx, req.CategoryID)
			posts, refreshError = categoryPosts, err
			return gctx.Err()
		}

		stream := f.sync.StreamPosts(gctx, req.Refresh)
		var last Snapshot
		for stream.Next() {
			last = stream.Snapshot()
		}
		posts = last.Posts
		stale = last.Origin != OriginRemote
		refreshError = stream.Err()
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	page.Posts = FilterPosts(posts, req.Query)
	page.Stale = stale
	page.RefreshError = refreshError
	return page, nil
}
