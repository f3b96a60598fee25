package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the catalog database and load seed data",
		Long: `Create the catalog database, apply migrations, load seed CSV files,
and build the full-text search index.

The seeds directory is expected to contain authors.csv, categories.csv,
books.csv, book_authors.csv, and book_categories.csv. Running init on an
existing database applies any pending migrations and appends the seeds.`,
		Example: `  # Initialize from the default seeds/ directory
  openshelf init

  # Initialize from a specific directory
  openshelf init --seeds-dir ./data/seeds`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd)
		},
	}

	return cmd
}

func runInit(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Loading seeds from %s...\n", cc.Cfg.SeedsDir)
	results, err := cc.Store.Seed(ctx, cc.Cfg.SeedsDir)
	if err != nil {
		return fmt.Errorf("failed to load seeds: %w", err)
	}

	total := 0
	for _, res := range results {
		fmt.Fprintf(out, "  %-22s %d rows\n", res.File, res.Rows)
		total += res.Rows
	}
	fmt.Fprintf(out, "Loaded %d rows into %s\n", total, cc.Cfg.DatabasePath)

	indexed, err := cc.Service.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	fmt.Fprintf(out, "Indexed %d books\n", indexed)

	return nil
}
