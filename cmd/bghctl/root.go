package main

import (
	"io"

	"github.com/dfryer1193/bghfeed/internal/app"
	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs.
type cli struct {
	out    io.Writer
	errOut io.Writer
	// open builds the feed services; replaced in tests.
	open    func() (*app.App, error)
	noColor bool
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "bghctl",
		Short: "Balkan Game Hub feed CLI",
		Long: `bghctl reads the Balkan Game Hub news feed from the terminal.

It shares the post cache and WordPress settings with the feed server.

Example usage:
  bghctl sync                  # Show the cached feed, then refresh it
  bghctl posts --query worlds  # Search the feed
  bghctl posts --category 7    # Live posts of one category
  bghctl categories --top 5    # Most active categories
  bghctl post 1234             # Read one post`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(c.out)
	root.SetErr(c.errOut)
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newSyncCmd(c),
		newPostsCmd(c),
		newCategoriesCmd(c),
		newPostCmd(c),
	)

	return root
}

func (c *cli) printer() *printer {
	return newPrinter(c.out, c.errOut, c.noColor)
}

// withApp opens the feed services for the duration of fn.
func (c *cli) withApp(fn func(a *app.App) error) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}
