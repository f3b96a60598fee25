package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to CSV files",
		Long: `Export the catalog tables to CSV files in the export directory.

The files use the same layout as the seed CSVs, so an exported catalog
can be loaded into a fresh database with openshelf init.`,
		Example: `  # Export to the default export/ directory
  openshelf export

  # Export to a specific directory
  openshelf export --export-dir ./backups/2026-08-26`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd)
		},
	}

	return cmd
}

func runExport(cmd *cobra.Command) error {
	cc, cleanup, err := NewStoreContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()

	results, err := cc.Store.Export(cmd.Context(), cc.Cfg.ExportDir)
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	total := 0
	for _, res := range results {
		fmt.Fprintf(out, "  %-22s %d rows\n", res.File, res.Rows)
		total += res.Rows
	}
	fmt.Fprintf(out, "Exported %d rows to %s\n", total, cc.Cfg.ExportDir)

	return nil
}
