package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sampleforge/sitecatalog/internal/importer"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Bulk import catalog entries from CSV",
		Long: `Import reads sites from a CSV file and adds them to the catalog.

The file must carry a header row with a website_url column. Optional
columns: platform, industry, tags, plus JSON columns produced by a
previous enrichment run (platforms, industries, colors, tag_confidence,
enrichment_signals, last_enriched_at). Legacy display fields are
derived from the JSON columns when absent.

Rows with a blank URL and rows whose URL is already cataloged are
skipped. A malformed row is reported and the rest of the file still
imports. Files over 5 MiB or 500 data rows are rejected outright.

Examples:
  # Import a CSV export
  sitecatalog import sites.csv

  # Machine-readable import summary
  sitecatalog import --json sites.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output import summary as JSON")

	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd)

	f, err := os.Open(args[0]) //nolint:gosec // User-provided CSV path is intentional
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // Read-only file
	}()

	db, err := openDatabase(cmd, true)
	if err != nil {
		return err
	}
	defer db.Close()

	imp := importer.New(db, importer.WithLogger(logger))
	result, err := imp.Import(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d site(s): %d created, %d skipped, %d failed\n",
		result.Created+result.Skipped+result.Failed,
		result.Created, result.Skipped, result.Failed)

	for _, rowErr := range result.RowErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  row %d (%s): %s\n",
			rowErr.Row, orNone(rowErr.URL), rowErr.Reason)
	}

	total, err := db.CountSites(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count catalog: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Catalog now holds %d site(s)\n", total)

	return nil
}

// orNone substitutes a placeholder for an empty URL in row error output.
func orNone(url string) string {
	if url == "" {
		return "no url"
	}
	return url
}
