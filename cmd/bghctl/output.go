package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dfryer1193/bghfeed/feed/domain"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printer writes human-readable command output.
type printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

func newPrinter(out, errOut io.Writer, noColor bool) *printer {
	useColors := !noColor
	if _, ok := os.LookupEnv("NO_COLOR"); ok || os.Getenv("TERM") == "dumb" {
		useColors = false
	}
	return &printer{out: out, err: errOut, useColors: useColors}
}

func (p *printer) Header(title string) {
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", title)
}

func (p *printer) Info(format string, args ...any) {
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Warning(format string, args ...any) {
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

func (p *printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

func (p *printer) table(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (p *printer) Posts(posts []*domain.Post) error {
	if len(posts) == 0 {
		p.Info("No posts.")
		return nil
	}

	rows := make([][]string, 0, len(posts))
	for _, post := range posts {
		rows = append(rows, []string{
			fmt.Sprint(post.ID),
			post.Date,
			post.Title,
			post.AuthorName,
		})
	}
	return p.table([]string{"ID", "DATE", "TITLE", "AUTHOR"}, rows)
}

func (p *printer) Categories(categories []domain.Category) error {
	if len(categories) == 0 {
		p.Info("No categories.")
		return nil
	}

	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			fmt.Sprint(c.ID),
			c.Name,
			fmt.Sprint(c.Count),
			c.Slug,
		})
	}
	return p.table([]string{"ID", "NAME", "POSTS", "SLUG"}, rows)
}
