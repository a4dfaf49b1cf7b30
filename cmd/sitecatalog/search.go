package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sampleforge/sitecatalog/internal/config"
	"github.com/sampleforge/sitecatalog/internal/report"
	"github.com/sampleforge/sitecatalog/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog",
		Long: `Search looks up cataloged sites by free-text query.

The query is expanded with known synonyms (e.g. "shop" also matches
"store" and "e-commerce") and scored against the URL, platform,
industry, and tag fields with per-field weights. When nothing matches
exactly, a fuzzy pass recovers near-miss spellings within edit
distance 2.

Every site returned by a search counts as used: its last-used
timestamp and heat score are refreshed.

Examples:
  # Search for design studios
  sitecatalog search design studio

  # Second page of results, 25 per page
  sitecatalog search --page 2 --page-size 25 agency

  # JSON output
  sitecatalog search --json bakery

  # Write the result table to a file
  sitecatalog search -o results.md portfolio`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().IntP("page", "p", 1, "Result page to display (1-based)")
	cmd.Flags().IntP("page-size", "s", config.DefaultPageSize,
		fmt.Sprintf("Results per page (max %d)", config.MaxPageSize))
	cmd.Flags().BoolP("json", "j", false, "Output results as JSON")
	cmd.Flags().StringP("output", "o", "",
		"Write results to specified file path")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return errors.New("search query is empty")
	}

	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		return err
	}
	if page < 1 {
		return fmt.Errorf("invalid page %d: must be at least 1", page)
	}

	cfg := config.NewConfig()
	cfg.PageSize, err = cmd.Flags().GetInt("page-size")
	if err != nil {
		return err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	db, err := openDatabase(cmd, true)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	engine := search.NewEngine(db, search.WithLogger(logger))

	// Stored heat scores decay with time, so recompute them before the
	// results are rendered. A failed refresh only stales the scores.
	now := time.Now()
	if err := db.RefreshHeatScores(ctx, now); err != nil {
		logger.Warn("failed to refresh heat scores", "error", err)
	}

	offset := (page - 1) * cfg.PageSize
	sites, total, err := engine.SearchPaginated(ctx, query, offset, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	// A returned site counts as used. Touch failures only degrade the
	// heat score, so they are logged and the search still succeeds.
	for i := range sites {
		if err := db.UpdateLastUsed(ctx, sites[i].ID, now); err != nil {
			logger.Warn("failed to update last used",
				"url", sites[i].URL, "error", err)
			continue
		}
		// Re-read the row so the rendered heat reflects this use.
		touched, err := db.GetSiteByID(ctx, sites[i].ID)
		if err != nil {
			logger.Warn("failed to reload touched site",
				"url", sites[i].URL, "error", err)
			continue
		}
		sites[i] = *touched
	}

	writer, cleanup, err := openReportWriter(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = cleanup() //nolint:errcheck // Best effort close
	}()

	result := &report.SearchPage{
		Query:  query,
		Total:  total,
		Offset: offset,
		Sites:  sites,
	}
	if _, err := writer.WriteSearch(result); err != nil {
		return fmt.Errorf("failed to write search results: %w", err)
	}

	return nil
}
