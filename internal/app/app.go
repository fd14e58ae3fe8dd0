// Package app wires the cache, the WordPress client and the feed services
// shared by the server and the CLI.
package app

import (
	"fmt"

	"github.com/dfryer1193/bghfeed/feed/application"
	"github.com/dfryer1193/bghfeed/feed/persistence"
	"github.com/dfryer1193/bghfeed/shared/db/sqlite"
	"github.com/dfryer1193/bghfeed/shared/wordpress"
	"github.com/rs/zerolog/log"
)

type Config struct {
	SQLite    *sqlite.SQLiteConfig
	WordPress *wordpress.Config
	Feed      *application.FeedConfig
}

// NewConfigFromEnv collects every package's environment configuration.
func NewConfigFromEnv() *Config {
	return &Config{
		SQLite:    sqlite.NewSQLiteConfig(),
		WordPress: wordpress.NewConfig(),
		Feed:      application.NewFeedConfig(),
	}
}

type App struct {
	database *sqlite.SQLiteDB

	Synchronizer *application.PostSynchronizer
	Categories   *application.CategoryService
	Details      *application.PostDetailService
	Feed         *application.Feed
}

// New opens the post cache and builds the services on top of it.
func New(cfg *Config) (*App, error) {
	client, err := wordpress.NewClient(cfg.WordPress)
	if err != nil {
		return nil, err
	}

	database := sqlite.NewSQLiteDB(cfg.SQLite)
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open post cache: %w", err)
	}

	repo := persistence.NewPostRepository(database.DB())
	synchronizer := application.NewPostSynchronizer(repo, client, cfg.Feed)
	categories := application.NewCategoryService(client, cfg.Feed)

	log.Info().
		Str("wordpress", cfg.WordPress.BaseURL).
		Str("cache", cfg.SQLite.Path).
		Msg("Feed services ready")

	return &App{
		database:     database,
		Synchronizer: synchronizer,
		Categories:   categories,
		Details:      application.NewPostDetailService(client),
		Feed:         application.NewFeed(synchronizer, categories, cfg.Feed),
	}, nil
}

// Close releases the post cache.
func (a *App) Close() error {
	return a.database.Close()
}
