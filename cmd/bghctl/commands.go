package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dfryer1193/bghfeed/feed/application"
	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/dfryer1193/bghfeed/internal/app"
	"github.com/spf13/cobra"
)

func newSyncCmd(c *cli) *cobra.Command {
	var noRefresh bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Show the cached feed, then refresh it from WordPress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.printer()
			return c.withApp(func(a *app.App) error {
				stream := a.Synchronizer.StreamPosts(cmd.Context(), !noRefresh)
				for stream.Next() {
					snapshot := stream.Snapshot()
					switch snapshot.Origin {
					case application.OriginCache:
						p.Header(fmt.Sprintf("Cached feed (%d posts)", len(snapshot.Posts)))
					default:
						p.Header(fmt.Sprintf("Refreshed feed (%d posts)", len(snapshot.Posts)))
					}
					if err := p.Posts(snapshot.Posts); err != nil {
						return err
					}
				}

				err := stream.Err()
				if errors.Is(err, application.ErrRefreshFailed) {
					p.Warning("Refresh failed, the feed above is stale: %v", err)
					return nil
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&noRefresh, "no-refresh", false, "only show the cached feed")
	return cmd
}

func newPostsCmd(c *cli) *cobra.Command {
	var (
		categoryID int
		query      string
		noRefresh  bool
	)

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List feed posts, optionally by category or search query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if categoryID < 0 {
				return fmt.Errorf("invalid category %d", categoryID)
			}

			p := c.printer()
			return c.withApp(func(a *app.App) error {
				page, err := a.Feed.Load(cmd.Context(), application.FeedRequest{
					CategoryID: categoryID,
					Query:      query,
					Refresh:    !noRefresh,
				})
				if err != nil {
					return err
				}

				if len(page.TopCategories) > 0 {
					names := make([]string, 0, len(page.TopCategories))
					for _, category := range page.TopCategories {
						names = append(names, fmt.Sprintf("%s (%d)", category.Name, category.ID))
					}
					p.Print("%s", p.Dim("Top categories: "+strings.Join(names, ", ")))
				}

				if err := p.Posts(page.Posts); err != nil {
					return err
				}

				if page.RefreshError != nil {
					p.Warning("Could not refresh posts: %v", page.RefreshError)
				} else if page.Stale {
					p.Warning("Showing cached posts without refreshing")
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&categoryID, "category", "c", 0, "show live posts of this category id")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by title or excerpt")
	cmd.Flags().BoolVar(&noRefresh, "no-refresh", false, "use the cache without refreshing it")
	return cmd
}

func newCategoriesCmd(c *cli) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories by number of posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("invalid --top %d", top)
			}

			p := c.printer()
			return c.withApp(func(a *app.App) error {
				var (
					categories []domain.Category
					err        error
				)
				if top > 0 {
					categories, err = a.Categories.Top(cmd.Context(), top)
				} else {
					categories, err = a.Categories.List(cmd.Context())
				}
				if err != nil {
					return err
				}
				return p.Categories(categories)
			})
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 0, "only show the N largest categories")
	return cmd
}

func newPostCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>",
		Short: "Read a single post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			p := c.printer()
			return c.withApp(func(a *app.App) error {
				detail, err := a.Details.GetPostDetail(cmd.Context(), id)
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("post %d does not exist", id)
				}
				if err != nil {
					return err
				}

				p.Header(detail.Title)
				meta := detail.Date + " · " + detail.AuthorName
				if detail.Category != nil {
					meta += " · " + detail.Category.Name
				}
				p.Print("%s", p.Dim(meta))
				if detail.ImageURL != "" {
					p.Print("%s", p.Dim(detail.ImageURL))
				}
				p.Print("")
				p.Print("%s", detail.Content())
				return nil
			})
		},
	}
}
