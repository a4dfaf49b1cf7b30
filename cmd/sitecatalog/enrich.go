package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sampleforge/sitecatalog/internal/config"
	"github.com/sampleforge/sitecatalog/internal/database"
	"github.com/sampleforge/sitecatalog/internal/enrich"
	"github.com/sampleforge/sitecatalog/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewEnrichCmd creates the enrich command.
func NewEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich [website-url...]",
		Short: "Enrich catalog entries from their landing pages",
		Long: `Enrich fetches each website's landing page and derives catalog
metadata from it:

- Platform (Shopify, WordPress, Wix, ... or Custom when unrecognized)
- Industries with confidence scores (top 5)
- Tags with confidence scores (top 10)
- Primary and secondary brand colors
- A content fingerprint for change detection

Results are upserted into the catalog by URL. A failing URL is
reported with its failure stage and never stops the rest of the batch.

Examples:
  # Enrich a single website
  sitecatalog enrich https://example.com

  # Enrich several websites concurrently
  sitecatalog enrich https://example.com https://acme.dev https://studio.example.org

  # Enrich every URL listed in a file (one per line, # comments allowed)
  sitecatalog enrich --list urls.txt

  # Write a JSON batch report
  sitecatalog enrich --json -o report.json https://example.com

  # Use extended detection tables from a config file
  sitecatalog enrich -c .sitecatalog https://example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runEnrichCmd,
	}

	cmd.Flags().StringP("list", "l", "",
		"File containing website URLs to enrich, one per line")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of concurrent enrichment workers")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-fetch timeout")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitecatalog in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON batch report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown batch report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write batch report to specified file path")

	return cmd
}

// runEnrichCmd executes the enrich command.
func runEnrichCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildEnrichConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	// Cancel the batch on interrupt so partial results still get reported
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	db, err := openDatabase(cmd, true)
	if err != nil {
		return err
	}
	defer db.Close()

	return runEnrich(ctx, cmd, cfg, db, logger)
}

// buildEnrichConfig creates a Config from cobra command flags.
func buildEnrichConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Load detection table extensions from the config file.
	// An explicitly specified path must exist; the default search is
	// best effort and an absent file just means no extensions.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Extensions, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.Extensions = &config.File{}
	}

	if cfg.Extensions.UserAgent != "" {
		cfg.UserAgent = cfg.Extensions.UserAgent
	}

	// Collect targets from positional arguments and the list file
	cfg.Targets = append(cfg.Targets, args...)

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		listed, err := readURLList(listPath)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, listed...)
	}

	return cfg, nil
}

// readURLList reads website URLs from a file, one per line.
// Blank lines and lines starting with # are skipped.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // Read-only file
	}()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}

	return urls, nil
}

// runEnrich executes the batch enrichment.
func runEnrich(ctx context.Context, cmd *cobra.Command, cfg *config.Config, db *database.CatalogDB, logger *slog.Logger) error {
	if len(cfg.Targets) == 0 {
		return config.ErrNoTarget
	}

	logger.Info("starting enrichment",
		"targets", len(cfg.Targets),
		"concurrency", cfg.Concurrency,
	)

	fetcher := enrich.NewFetcher(&http.Client{},
		enrich.WithUserAgent(cfg.UserAgent),
		enrich.WithTimeout(cfg.Timeout),
		enrich.WithMaxBodySize(cfg.MaxBodySize),
		enrich.WithFetcherLogger(logger),
	)

	detectorOpts := []enrich.DetectorOption{
		enrich.WithDetectorLogger(logger),
	}
	if cfg.Extensions != nil && cfg.Extensions.HasExtensions() {
		detectorOpts = append(detectorOpts,
			enrich.WithExtraSignatures(cfg.Extensions.PlatformSignatures),
			enrich.WithExtraKeywords(cfg.Extensions.IndustryKeywords),
		)
	}
	detector := enrich.NewDetector(detectorOpts...)

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			p := pipeline.New(pipeline.WithLogger(logger))
			p.AddSteps(pipeline.DefaultSteps(fetcher, detector, db)...)
			return p
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	// ProcessBatch returns a report even when the batch is cancelled,
	// so write it out before deciding how the run ended.
	batchReport, batchErr := bp.ProcessBatch(ctx, cfg.Targets)

	writer, cleanup, err := openReportWriter(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = cleanup() //nolint:errcheck // Best effort close
	}()

	if _, err := writer.WriteBatch(batchReport); err != nil {
		return fmt.Errorf("failed to write batch report: %w", err)
	}

	if batchErr != nil {
		return fmt.Errorf("batch enrichment failed: %w", batchErr)
	}

	// Individual failures are part of a normal run; a batch where
	// nothing succeeded is an error.
	if batchReport.Total > 0 && batchReport.Succeeded == 0 {
		return fmt.Errorf("all %d enrichment targets failed", batchReport.Total)
	}

	return nil
}
