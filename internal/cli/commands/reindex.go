package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReindexCommand creates the reindex command.
func NewReindexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the full-text search index",
		Long: `Rebuild the full-text search index from the catalog database.

The web server keeps the index current as books are added; reindex is
for recovering from a deleted or corrupt index, or after loading data
outside the server.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReindex(cmd)
		},
	}

	return cmd
}

func runReindex(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	indexed, err := cc.Service.Reindex(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d books into %s\n", indexed, cc.Cfg.IndexPath)
	return nil
}
