package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/search"
)

// SearchOptions holds options for the search command.
type SearchOptions struct {
	Title    string
	Author   string
	Category string
	SortBy   string
	Desc     bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog from the command line",
		Long: `Search the catalog and print matching books as a table.

Positional arguments form a free-text query against the search index.
Flags add the same structured filters the web form offers; all filters
combine with AND.`,
		Example: `  # Free-text query
  openshelf search desert planet

  # Title keyword filter
  openshelf search --title wizard

  # Combine free-text with an author filter, sorted by publish date
  openshelf search prophecy --author 3 --sort-by publish_date --desc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Filter by title or description keyword")
	cmd.Flags().StringVar(&opts.Author, "author", "", "Filter by author ID")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by genre ID")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "Sort column (title|description|publisher|publish_date)")
	cmd.Flags().BoolVar(&opts.Desc, "desc", false, "Sort descending")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *SearchOptions, args []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	criteria, err := buildCriteria(opts, args)
	if err != nil {
		return err
	}
	if !criteria.HasFilter() {
		return fmt.Errorf("no filters given; pass a query or use --title, --author, or --category")
	}

	books, err := cc.Service.Search(cmd.Context(), criteria)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	renderBooks(cmd.OutOrStdout(), books)
	return nil
}

func buildCriteria(opts *SearchOptions, args []string) (search.Criteria, error) {
	c := search.Criteria{
		Title:      strings.TrimSpace(opts.Title),
		AuthorID:   strings.TrimSpace(opts.Author),
		CategoryID: strings.TrimSpace(opts.Category),
		NLP:        strings.TrimSpace(strings.Join(args, " ")),
	}

	if opts.Author != "" && c.AuthorIDInt() == 0 {
		return c, fmt.Errorf("invalid author ID: %s", opts.Author)
	}
	if opts.Category != "" && c.CategoryIDInt() == 0 {
		return c, fmt.Errorf("invalid genre ID: %s", opts.Category)
	}

	if opts.SortBy != "" {
		col := search.Column(opts.SortBy)
		switch col {
		case search.ColumnTitle, search.ColumnDescription, search.ColumnPublisher, search.ColumnPublishDate:
		default:
			return c, fmt.Errorf("invalid sort column: %s", opts.SortBy)
		}
		dir := search.Asc
		if opts.Desc {
			dir = search.Desc
		}
		c = c.WithSort(col, dir)
	}

	return c, nil
}

func renderBooks(w io.Writer, books []catalog.Book) {
	if len(books) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Description", WidthMax: 48},
	})

	t.AppendHeader(table.Row{"ID", "Title", "Description", "Publisher", "Publish Date", "Authors", "Genres"})
	for _, b := range books {
		t.AppendRow(table.Row{
			b.ID,
			b.Title,
			b.Description,
			b.Publisher,
			b.PublishDate,
			b.Authors,
			b.Categories,
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(books))
}
