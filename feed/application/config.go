package application

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultFeedPageSize     = 20
	defaultCategoryPageSize = 50
	defaultCategoryListSize = 20
	defaultCategoryCacheTTL = 30 * time.Minute
	defaultTopCategories    = 5
)

type FeedConfig struct {
	// FeedPageSize is the number of posts fetched for the general feed.
	FeedPageSize int
	// CategoryPageSize is the number of posts fetched for a category view.
	CategoryPageSize int
	// CategoryListSize is the number of categories requested upstream.
	CategoryListSize int
	// CategoryCacheTTL bounds how long a category listing is reused.
	CategoryCacheTTL time.Duration
	TopCategories    int
}

// NewFeedConfig reads FEED_PAGE_SIZE, CATEGORY_PAGE_SIZE, CATEGORY_LIST_SIZE
// and CATEGORY_CACHE_TTL.
func NewFeedConfig() *FeedConfig {
	return &FeedConfig{
		FeedPageSize:     envInt("FEED_PAGE_SIZE", defaultFeedPageSize),
		CategoryPageSize: envInt("CATEGORY_PAGE_SIZE", defaultCategoryPageSize),
		CategoryListSize: envInt("CATEGORY_LIST_SIZE", defaultCategoryListSize),
		CategoryCacheTTL: envDuration("CATEGORY_CACHE_TTL", defaultCategoryCacheTTL),
		TopCategories:    defaultTopCategories,
	}
}

// DefaultFeedConfig returns the built-in sizes without consulting the environment.
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		FeedPageSize:     defaultFeedPageSize,
		CategoryPageSize: defaultCategoryPageSize,
		CategoryListSize: defaultCategoryListSize,
		CategoryCacheTTL: defaultCategoryCacheTTL,
		TopCategories:    defaultTopCategories,
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring invalid integer setting")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", v).Msg("Ignoring invalid duration setting")
		return fallback
	}
	return d
}
