// Package main provides the entry point for the sitecatalog CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sampleforge/sitecatalog/internal/config"
	"github.com/sampleforge/sitecatalog/internal/database"
	catlog "github.com/sampleforge/sitecatalog/internal/log"
	"github.com/sampleforge/sitecatalog/internal/report"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitecatalog.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitecatalog",
		Short: "Personal website catalog with search and enrichment",
		Long: `sitecatalog keeps a local catalog of websites and enriches each entry
from its landing page: platform, industry, tags with confidence scores,
and brand colors.

Search uses synonym expansion and weighted field scoring, with a fuzzy
fallback for typos. All data lives in a local SQLite database.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory containing the catalog database")

	// Add subcommands
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewEnrichCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewFeedbackCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the redacting structured logger for a command.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := catlog.NewSecureLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}

// openDatabase opens the catalog database under the --db-dir directory.
// The create flag controls whether a missing database is created.
func openDatabase(cmd *cobra.Command, create bool) (*database.CatalogDB, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = create

	db, err := database.Open(dbDir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openReportWriter builds the report writer for a command from the
// output format flags. The returned cleanup function closes the output
// file when one was requested; it is a no-op for stdout.
func openReportWriter(cmd *cobra.Command, cfg *config.Config) (report.Writer, func() error, error) {
	noop := func() error { return nil }

	output := cmd.OutOrStdout()
	cleanup := noop
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, noop, fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
		cleanup = f.Close
	}

	if cfg.JSONReport {
		return report.NewJSONWriter(output, report.WithPrettyPrint()), cleanup, nil
	}
	return report.NewMarkdownWriter(output), cleanup, nil
}
