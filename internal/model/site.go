package model

import (
	"net/url"
	"strings"
	"time"
)

// Site represents one cataloged website.
//
// The URL is the unique key: re-enrichment overwrites every derived field
// for the same URL, there is no merge or versioning. Legacy display fields
// hold comma-joined top-N values of the structured fields and exist for
// backward-compatible rendering.
type Site struct {
	// ID is the storage-assigned identifier. Zero for unsaved records.
	ID int64 `json:"id"`

	// URL is the normalized site URL, always carrying a scheme.
	URL string `json:"website_url"`

	// PlatformLegacy is the display string for detected platforms,
	// e.g. "Webflow, Next.js". "Unknown" when nothing was detected.
	PlatformLegacy string `json:"platform,omitempty"`

	// IndustryLegacy is the display string for detected industries.
	IndustryLegacy string `json:"industry,omitempty"`

	// TagsLegacy is the comma-joined display string of the strongest tags.
	TagsLegacy string `json:"tags,omitempty"`

	// Platforms holds detected platform names, confidence-ranked descending.
	Platforms []string `json:"platforms,omitempty"`

	// Industries holds detected industry names, confidence-ranked descending.
	Industries []string `json:"industries,omitempty"`

	// TagConfidence maps tag tokens to confidence in [0,1].
	TagConfidence map[string]float64 `json:"tag_confidence,omitempty"`

	// Colors holds the primary/secondary visual identity colors.
	Colors Colors `json:"colors,omitzero"`

	// EnrichmentSignals is the raw per-detector score snapshot. It is a
	// write-only debug artifact: ranking and detection never read it back.
	EnrichmentSignals *Signals `json:"enrichment_signals,omitempty"`

	// LastEnrichedAt records when the enrichment pipeline last wrote
	// this record. Nil for manually imported rows.
	LastEnrichedAt *time.Time `json:"last_enriched_at,omitempty"`

	// LastUsedAt records when the site was last returned to a user.
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`

	// HeatScore is the usage-recency popularity metric in [0,100].
	// It is independent of search ranking.
	HeatScore float64 `json:"heat_score,omitempty"`
}

// Colors holds the primary and secondary colors extracted from a site.
// Values are lowercase 6-digit hex strings with a leading '#'.
// Nil pointers mean no color was found.
type Colors struct {
	Primary   *string `json:"primary"`
	Secondary *string `json:"secondary"`
}

// IsZero reports whether no color was extracted.
func (c Colors) IsZero() bool {
	return c.Primary == nil && c.Secondary == nil
}

// Signals is the raw enrichment score snapshot persisted for debugging
// and audit. Never read back by ranking or detection logic.
type Signals struct {
	// PlatformScores maps platform name to detection confidence.
	PlatformScores map[string]float64 `json:"platform_scores,omitempty"`

	// IndustryScores maps industry name to detection confidence.
	IndustryScores map[string]float64 `json:"industry_scores,omitempty"`

	// Colors echoes the extracted colors at enrichment time.
	Colors Colors `json:"colors,omitzero"`

	// ContentHash is the SHA3-256 fingerprint of the fetched HTML,
	// useful for spotting unchanged content between enrichment runs.
	ContentHash string `json:"content_hash,omitempty"`
}

// Host returns the normalized host (domain) portion of the site URL.
// Malformed URLs degrade to the whole normalized URL rather than erroring,
// so ranking can still match against something.
func (s *Site) Host() string {
	raw := strings.ToLower(strings.TrimSpace(s.URL))
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// Path returns the normalized path portion of the site URL, or the empty
// string when the URL has no path or cannot be parsed.
func (s *Site) Path() string {
	raw := strings.ToLower(strings.TrimSpace(s.URL))
	if raw == "" || !strings.Contains(raw, "://") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

// TagTokens splits the legacy tag string on commas and returns the
// trimmed, lowercased, non-empty tokens. A missing tag string yields nil.
func (s *Site) TagTokens() []string {
	if s.TagsLegacy == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(s.TagsLegacy, ",") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TagConfidenceFor returns the confidence for a tag token, or 0 when the
// tag has no recorded confidence.
func (s *Site) TagConfidenceFor(tag string) float64 {
	if s.TagConfidence == nil {
		return 0
	}
	return s.TagConfidence[tag]
}
