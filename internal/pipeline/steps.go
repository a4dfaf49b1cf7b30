package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sampleforge/sitecatalog/internal/enrich"
	"github.com/sampleforge/sitecatalog/internal/model"
)

// MaxURLLength bounds accepted input URLs. Anything longer is garbage
// or an attack, not a website address.
const MaxURLLength = 2048

// SiteStore persists enrichment results. The database package provides
// the production implementation; tests substitute fakes.
type SiteStore interface {
	// UpsertByURL inserts the site or fully replaces the derived fields
	// of the existing record with the same URL, returning the stored row.
	UpsertByURL(ctx context.Context, site *model.Site) (*model.Site, error)
}

// ValidateStep rejects inputs that cannot possibly be a fetchable
// website URL. It runs before normalization so error messages refer to
// the caller's original input.
type ValidateStep struct{}

// NewValidateStep creates a URL validation step.
func NewValidateStep() *ValidateStep {
	return &ValidateStep{}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do validates the input URL.
func (s *ValidateStep) Do(_ context.Context, report *model.EnrichmentReport) error {
	trimmed := strings.TrimSpace(report.InputURL)
	if trimmed == "" {
		return ErrEmptyURL
	}
	if len(trimmed) > MaxURLLength {
		return fmt.Errorf("%w: %d characters", ErrURLTooLong, len(trimmed))
	}
	idx := strings.Index(trimmed, "://")
	if idx < 0 {
		return fmt.Errorf("%w: got %q", ErrMissingScheme, trimmed)
	}
	scheme := strings.ToLower(trimmed[:idx])
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: got %q", ErrUnsupportedScheme, scheme)
	}
	return nil
}

// NormalizeStep canonicalizes the input URL so that the same site always
// maps to the same stored record.
type NormalizeStep struct{}

// NewNormalizeStep creates a URL normalization step.
func NewNormalizeStep() *NormalizeStep {
	return &NormalizeStep{}
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do trims the URL. A missing scheme defaults to https, though
// validation has already rejected schemeless input by the time the
// pipeline reaches this step; the default keeps the step total when
// called on its own.
func (s *NormalizeStep) Do(_ context.Context, report *model.EnrichmentReport) error {
	trimmed := strings.TrimSpace(report.InputURL)
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	report.NormalizedURL = trimmed
	return nil
}

// FetchStep retrieves the site's HTML and the combined text blob.
type FetchStep struct {
	fetcher *enrich.Fetcher
}

// NewFetchStep creates a page fetch step using the given fetcher.
func NewFetchStep(fetcher *enrich.Fetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches the normalized URL and stores the page content on the report.
func (s *FetchStep) Do(ctx context.Context, report *model.EnrichmentReport) error {
	page, err := s.fetcher.Fetch(ctx, report.NormalizedURL)
	if err != nil {
		return err
	}
	report.HTML = page.HTML
	report.CombinedText = page.CombinedText
	report.ContentHash = page.ContentHash
	return nil
}

// DetectStep runs the platform, industry, tag, and color detectors over
// the fetched page. Detection never fails: an unreadable page simply
// yields the Custom platform fallback and empty signal sets.
type DetectStep struct {
	detector *enrich.Detector
}

// NewDetectStep creates a signal detection step using the given detector.
func NewDetectStep(detector *enrich.Detector) *DetectStep {
	return &DetectStep{detector: detector}
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect"
}

// Do fills the report's detection results from the fetched content.
func (s *DetectStep) Do(_ context.Context, report *model.EnrichmentReport) error {
	report.Platforms = s.detector.DetectPlatforms(report.HTML)
	report.Industries = s.detector.DetectIndustries(report.CombinedText)
	report.TagConfidence = s.detector.ExtractTags(report.CombinedText)
	report.Colors = s.detector.ExtractColors(report.HTML)
	return nil
}

// PersistStep writes the enrichment outcome to storage. Re-enriching an
// existing URL replaces all derived fields of that record.
type PersistStep struct {
	store SiteStore
}

// NewPersistStep creates a persistence step backed by the given store.
func NewPersistStep(store SiteStore) *PersistStep {
	return &PersistStep{store: store}
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do builds the site record from the report and upserts it by URL.
func (s *PersistStep) Do(ctx context.Context, report *model.EnrichmentReport) error {
	now := time.Now().UTC()
	site := &model.Site{
		URL:               report.NormalizedURL,
		PlatformLegacy:    report.PlatformLegacy(),
		IndustryLegacy:    report.IndustryLegacy(),
		TagsLegacy:        report.TagsLegacy(),
		Platforms:         model.PlatformNames(report.Platforms),
		Industries:        model.IndustryNames(report.Industries),
		TagConfidence:     report.TagConfidence,
		Colors:            report.Colors,
		EnrichmentSignals: report.Signals(),
		LastEnrichedAt:    &now,
	}

	stored, err := s.store.UpsertByURL(ctx, site)
	if err != nil {
		return fmt.Errorf("failed to persist enrichment result: %w", err)
	}
	report.Site = stored
	return nil
}

// DefaultSteps assembles the standard enrichment sequence.
func DefaultSteps(fetcher *enrich.Fetcher, detector *enrich.Detector, store SiteStore) []Step {
	return []Step{
		NewValidateStep(),
		NewNormalizeStep(),
		NewFetchStep(fetcher),
		NewDetectStep(detector),
		NewPersistStep(store),
	}
}
