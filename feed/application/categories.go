package application

import (
	"cmp"
	"context"
	"slices"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

const allCategoriesKey = "all"

// CategoryService serves the category list, memoized in memory for the
// configured TTL. Categories are never persisted.
type CategoryService struct {
	source domain.RemoteSource
	cfg    *FeedConfig
	cache  *expirable.LRU[string, []domain.Category]
}

func NewCategoryService(source domain.RemoteSource, cfg *FeedConfig) *CategoryService {
	return &CategoryService{
		source: source,
		cfg:    cfg,
		cache:  expirable.NewLRU[string, []domain.Category](1, nil, cfg.CategoryCacheTTL),
	}
}

// List returns the categories ordered by post count, largest first. Equal
// counts keep the upstream order.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cache.Get(allCategoriesKey); ok {
		return slices.Clone(cached), nil
	}

	categories, err := s.source.FetchCategories(ctx, s.cfg.CategoryListSize)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch categories")
		return nil, err
	}

	sorted := make([]domain.Category, 0, len(categories))
	sorted = append(sorted, categories...)
	slices.SortStableFunc(sorted, func(a, b domain.Category) int {
		return cmp.Compare(b.Count, a.Count)
	})

	// An empty listing is fetched again next time.
	if len(sorted) > 0 {
		s.cache.Add(allCategoriesKey, sorted)
	}

	return slices.Clone(sorted), nil
}

// Top returns the n most populated categories; n <= 0 selects the configured default.
func (s *CategoryService) Top(ctx context.Context, n int) ([]domain.Category, error) {
	if n <= 0 {
		n = s.cfg.TopCategories
	}

	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return categories[:min(n, len(categories))], nil
}

// Invalidate drops the memoized listing.
func (s *CategoryService) Invalidate() {
	s.cache.Purge()
}
