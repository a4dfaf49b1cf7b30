package model

import (
	"sort"
	"strings"
	"time"
)

// MaxLegacyValues caps how many platform/industry names feed the joined
// legacy display fields.
const MaxLegacyValues = 3

// MaxLegacyTags caps how many tags feed the joined legacy tag field.
const MaxLegacyTags = 10

// EnrichmentReport accumulates the state of one enrichment run as it
// moves through the pipeline stages. Each stage fills in its portion;
// a failed stage records the failure and stops the run.
type EnrichmentReport struct {
	// InputURL is the URL as supplied by the caller, untrusted.
	InputURL string `json:"input_url"`

	// NormalizedURL is the trimmed URL with a guaranteed scheme.
	// Empty until the normalize stage has run.
	NormalizedURL string `json:"normalized_url,omitempty"`

	// HTML is the fetched document. Kept in memory for the detect stage
	// and never persisted.
	HTML string `json:"-"`

	// CombinedText is the title + meta description + leading paragraphs
	// blob used by the industry and tag detectors.
	CombinedText string `json:"-"`

	// ContentHash is the SHA3-256 hex fingerprint of the fetched HTML.
	ContentHash string `json:"content_hash,omitempty"`

	// Platforms holds detected platforms, confidence-ranked descending.
	Platforms []PlatformScore `json:"platforms,omitempty"`

	// Industries holds detected industries, confidence-ranked descending.
	Industries []IndustryScore `json:"industries,omitempty"`

	// TagConfidence maps extracted tag tokens to confidence in [0,1].
	TagConfidence map[string]float64 `json:"tag_confidence,omitempty"`

	// Colors holds the extracted primary/secondary colors.
	Colors Colors `json:"colors,omitzero"`

	// Site is the persisted record, set by the persist stage on success.
	Site *Site `json:"site,omitempty"`

	// FailedStage names the pipeline stage that failed, empty on success.
	FailedStage string `json:"failed_stage,omitempty"`

	// Error is the human-readable failure reason, empty on success.
	Error string `json:"error,omitempty"`

	// StartedAt and Duration bound the run for reporting.
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// NewEnrichmentReport creates a report for the given input URL.
func NewEnrichmentReport(inputURL string) *EnrichmentReport {
	return &EnrichmentReport{
		InputURL:  inputURL,
		StartedAt: time.Now().UTC(),
	}
}

// OK reports whether the run completed every stage.
func (r *EnrichmentReport) OK() bool {
	return r.Error == ""
}

// Fail records a stage failure. The first failure wins; later calls are
// ignored so wrappers cannot mask the original reason.
func (r *EnrichmentReport) Fail(stage, reason string) {
	if r.Error != "" {
		return
	}
	r.FailedStage = stage
	r.Error = reason
}

// PlatformLegacy returns the joined display string for detected platforms.
func (r *EnrichmentReport) PlatformLegacy() string {
	return joinLegacy(PlatformNames(r.Platforms))
}

// IndustryLegacy returns the joined display string for detected industries.
func (r *EnrichmentReport) IndustryLegacy() string {
	return joinLegacy(IndustryNames(r.Industries))
}

// TagsLegacy returns the comma-joined strongest tags, confidence
// descending. Ties break alphabetically so the output is deterministic.
func (r *EnrichmentReport) TagsLegacy() string {
	return JoinTopTags(r.TagConfidence, MaxLegacyTags)
}

// Signals builds the write-only score snapshot for persistence.
func (r *EnrichmentReport) Signals() *Signals {
	platformScores := make(map[string]float64, len(r.Platforms))
	for _, p := range r.Platforms {
		platformScores[string(p.Platform)] = p.Confidence
	}
	industryScores := make(map[string]float64, len(r.Industries))
	for _, i := range r.Industries {
		industryScores[i.Industry] = i.Confidence
	}
	return &Signals{
		PlatformScores: platformScores,
		IndustryScores: industryScores,
		Colors:         r.Colors,
		ContentHash:    r.ContentHash,
	}
}

// joinLegacy joins the top names into a display string, or "Unknown"
// when there is nothing to show.
func joinLegacy(names []string) string {
	if len(names) == 0 {
		return legacyUnknownStr
	}
	if len(names) > MaxLegacyValues {
		names = names[:MaxLegacyValues]
	}
	return strings.Join(names, ", ")
}

// JoinTopTags joins up to limit tags sorted by confidence descending,
// breaking ties alphabetically. An empty map yields the empty string.
func JoinTopTags(tagConfidence map[string]float64, limit int) string {
	if len(tagConfidence) == 0 || limit <= 0 {
		return ""
	}
	tags := make([]string, 0, len(tagConfidence))
	for tag := range tagConfidence {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		ci, cj := tagConfidence[tags[i]], tagConfidence[tags[j]]
		if ci != cj {
			return ci > cj
		}
		return tags[i] < tags[j]
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return strings.Join(tags, ", ")
}

// BatchReport summarizes one batch enrichment run. Rows keep the input
// order regardless of completion order.
type BatchReport struct {
	StartedAt time.Time           `json:"started_at"`
	Duration  time.Duration       `json:"duration"`
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Rows      []*EnrichmentReport `json:"rows"`
}

// NewBatchReport builds a summary over the given per-row reports.
func NewBatchReport(startedAt time.Time, rows []*EnrichmentReport) *BatchReport {
	br := &BatchReport{
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Total:     len(rows),
		Rows:      rows,
	}
	for _, row := range rows {
		if row == nil {
			continue
		}
		if row.OK() {
			br.Succeeded++
		} else {
			br.Failed++
		}
	}
	return br
}
