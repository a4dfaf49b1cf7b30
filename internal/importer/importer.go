package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sampleforge/sitecatalog/internal/database"
	"github.com/sampleforge/sitecatalog/internal/model"
)

// Upload guards. The caps bound memory and keep one bad file from
// swamping the catalog.
const (
	// MaxCSVSizeBytes is the largest accepted CSV file.
	MaxCSVSizeBytes = 5 * 1024 * 1024

	// MaxCSVRows is the largest accepted number of data rows.
	MaxCSVRows = 500

	// maxImportTags caps how many tags feed the derived legacy tag
	// field during import.
	maxImportTags = 6
)

var (
	// ErrCSVTooLarge is returned when the file exceeds MaxCSVSizeBytes.
	ErrCSVTooLarge = errors.New("CSV file too large")

	// ErrTooManyRows is returned when the file exceeds MaxCSVRows.
	ErrTooManyRows = errors.New("CSV has too many rows")

	// ErrMissingURLColumn is returned when the header lacks website_url.
	ErrMissingURLColumn = errors.New("CSV header is missing the website_url column")
)

// SiteWriter is the storage contract the importer needs.
type SiteWriter interface {
	// InsertSite stores a new site, returning database.ErrDuplicateURL
	// when the URL is already cataloged.
	InsertSite(ctx context.Context, site *model.Site) (*model.Site, error)
}

// RowError records why one CSV row was not imported.
type RowError struct {
	// Row is the 1-based data row number (the header is row 0).
	Row int `json:"row"`

	// URL is the row's website_url value, possibly empty.
	URL string `json:"website_url,omitempty"`

	// Reason is the human-readable failure description.
	Reason string `json:"reason"`
}

// Result summarizes one import run.
type Result struct {
	// Created counts newly stored sites.
	Created int `json:"created"`

	// Skipped counts rows ignored without error: blank URLs and
	// duplicates of already-cataloged sites.
	Skipped int `json:"skipped"`

	// Failed counts rows rejected with a recorded reason.
	Failed int `json:"failed"`

	// RowErrors holds one entry per failed row, in file order.
	RowErrors []RowError `json:"row_errors,omitempty"`
}

// Importer reads catalog sites from CSV and writes them to storage.
type Importer struct {
	store  SiteWriter
	logger *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets a custom logger for the importer.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// New creates an Importer writing to the given store.
func New(store SiteWriter, opts ...Option) *Importer {
	imp := &Importer{store: store}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.logger == nil {
		imp.logger = slog.Default()
	}
	return imp
}

// Import reads the whole CSV from r and stores its rows. File-level
// problems (size, row count, unreadable header) fail the import; row
// level problems are recorded in the Result and never abort the rest
// of the file.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	// Read one byte past the cap to distinguish "at the limit" from over.
	data, err := io.ReadAll(io.LimitReader(r, MaxCSVSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(data) > MaxCSVSizeBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrCSVTooLarge, MaxCSVSizeBytes)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["website_url"]; !ok {
		return nil, ErrMissingURLColumn
	}

	result := &Result{}
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if rowNum > MaxCSVRows {
			return nil, fmt.Errorf("%w: over %d rows", ErrTooManyRows, MaxCSVRows)
		}
		if err != nil {
			result.Failed++
			result.RowErrors = append(result.RowErrors, RowError{
				Row: rowNum, Reason: err.Error(),
			})
			continue
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		url := field("website_url")
		if url == "" {
			result.Skipped++
			continue
		}

		site, err := buildSite(url, field)
		if err != nil {
			imp.logger.Warn("skipping malformed row", "row", rowNum, "url", url, "error", err)
			result.Failed++
			result.RowErrors = append(result.RowErrors, RowError{
				Row: rowNum, URL: url, Reason: err.Error(),
			})
			continue
		}

		if _, err := imp.store.InsertSite(ctx, site); err != nil {
			if errors.Is(err, database.ErrDuplicateURL) {
				imp.logger.Debug("skipping duplicate URL", "row", rowNum, "url", url)
				result.Skipped++
				continue
			}
			result.Failed++
			result.RowErrors = append(result.RowErrors, RowError{
				Row: rowNum, URL: url, Reason: err.Error(),
			})
			continue
		}
		result.Created++
	}

	imp.logger.Info("CSV import complete",
		"created", result.Created,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// buildSite assembles one Site from a CSV row's fields, decoding the
// optional JSON columns and deriving missing legacy display values.
func buildSite(url string, field func(string) string) (*model.Site, error) {
	site := &model.Site{
		URL:            url,
		PlatformLegacy: field("platform"),
		IndustryLegacy: field("industry"),
		TagsLegacy:     field("tags"),
	}

	if raw := field("platforms"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &site.Platforms); err != nil {
			return nil, fmt.Errorf("invalid platforms JSON: %w", err)
		}
	}
	if raw := field("industries"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &site.Industries); err != nil {
			return nil, fmt.Errorf("invalid industries JSON: %w", err)
		}
	}
	if raw := field("colors"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &site.Colors); err != nil {
			return nil, fmt.Errorf("invalid colors JSON: %w", err)
		}
	}
	if raw := field("tag_confidence"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &site.TagConfidence); err != nil {
			return nil, fmt.Errorf("invalid tag_confidence JSON: %w", err)
		}
	}
	if raw := field("enrichment_signals"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &site.EnrichmentSignals); err != nil {
			return nil, fmt.Errorf("invalid enrichment_signals JSON: %w", err)
		}
	}
	if raw := field("last_enriched_at"); raw != "" {
		// Tolerate a bad timestamp: the row is still worth importing.
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			utc := t.UTC()
			site.LastEnrichedAt = &utc
		}
	}

	// Backward compat: derive display fields from the structured columns.
	if site.PlatformLegacy == "" && len(site.Platforms) > 0 {
		site.PlatformLegacy = joinTop(site.Platforms, model.MaxLegacyValues)
	}
	if site.IndustryLegacy == "" && len(site.Industries) > 0 {
		site.IndustryLegacy = joinTop(site.Industries, model.MaxLegacyValues)
	}
	if site.TagsLegacy == "" && len(site.TagConfidence) > 0 {
		site.TagsLegacy = model.JoinTopTags(site.TagConfidence, maxImportTags)
	}

	return site, nil
}

// joinTop joins up to limit values with ", ".
func joinTop(values []string, limit int) string {
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, ", ")
}
