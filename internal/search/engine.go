package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sampleforge/sitecatalog/internal/model"
	"github.com/sampleforge/sitecatalog/internal/textutil"
)

// Fuzzy fallback bounds: a record survives the fallback scan when the
// whole normalized query is within this edit distance of its host,
// platform, or industry, and the length gap makes that plausible.
const (
	fallbackMaxEditDist = 2
	fallbackMaxLenDelta = 6
)

// SubstringFields names the record fields the coarse candidate filter
// matches terms against. The record store maps these to its columns.
var SubstringFields = []string{"website_url", "platform", "industry", "tags"}

// RecordStore is the read contract the engine needs from storage.
//
// Design decision: the engine depends on this narrow interface rather
// than the concrete database type so ranking can be tested against an
// in-memory store and storage backends can be swapped freely.
type RecordStore interface {
	// FindBySubstring returns records where any of the given fields
	// contains any of the terms as a case-insensitive substring.
	// Result order must be stable across calls for identical data.
	FindBySubstring(ctx context.Context, fields, terms []string) ([]model.Site, error)

	// FindAll returns every record in stable order.
	FindAll(ctx context.Context) ([]model.Site, error)
}

// Engine scores and ranks catalog records for text queries.
type Engine struct {
	store  RecordStore
	logger *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates a ranking engine backed by the given store.
func NewEngine(store RecordStore, opts ...EngineOption) *Engine {
	e := &Engine{store: store}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// candidate is a record admitted to the ranking phase. Records recovered
// by the fuzzy fallback carry a small baseline score (the count of fields
// that fuzzily matched) so a recovered typo match is never dropped as a
// zero scorer; coarse-filter candidates start at zero and must earn their
// score from term matches alone.
type candidate struct {
	site model.Site
	base float64
}

// SearchPaginated runs the full search flow for a query and returns the
// requested page of ranked records plus the total match count.
//
// Offsets and limits are clamped rather than rejected: negative values
// count as zero, and an offset past the end yields an empty page with the
// correct total.
func (e *Engine) SearchPaginated(ctx context.Context, query string, offset, limit int) ([]model.Site, int, error) {
	terms := ExpandTerms(query)
	if len(terms) == 0 {
		return nil, 0, nil
	}

	sites, err := e.store.FindBySubstring(ctx, SubstringFields, terms)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve candidates: %w", err)
	}

	candidates := make([]candidate, 0, len(sites))
	for _, site := range sites {
		candidates = append(candidates, candidate{site: site})
	}

	// Fuzzy fallback: substring filtering found nothing, so the query is
	// probably misspelled. Scan everything and keep near misses. The
	// fallback only widens the candidate set; ranking below is shared.
	if len(candidates) == 0 {
		candidates, err = e.fuzzyFallback(ctx, query)
		if err != nil {
			return nil, 0, err
		}
		e.logger.Debug("fuzzy fallback pass",
			"query", query,
			"recovered", len(candidates),
		)
	}

	if len(candidates) == 0 {
		return nil, 0, nil
	}

	type scored struct {
		site  model.Site
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if s := c.base + Score(&c.site, terms); s > 0 {
			ranked = append(ranked, scored{site: c.site, score: s})
		}
	}
	if len(ranked) == 0 {
		return nil, 0, nil
	}

	// Stable sort keeps the store's relative order for equal scores,
	// which makes pagination deterministic across calls.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	total := len(ranked)
	start := offset
	if start < 0 {
		start = 0
	}
	if limit < 0 {
		limit = 0
	}
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]model.Site, 0, end-start)
	for _, r := range ranked[start:end] {
		page = append(page, r.site)
	}
	return page, total, nil
}

// fuzzyFallback scans all records and keeps those whose host, platform,
// or industry is within a small edit distance of the whole query. Each
// fuzzily matching field adds one point of baseline score.
func (e *Engine) fuzzyFallback(ctx context.Context, query string) ([]candidate, error) {
	all, err := e.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan records for fuzzy fallback: %w", err)
	}

	q := textutil.Normalize(query)
	var kept []candidate
	for _, site := range all {
		// The Unknown and Custom sentinels are display fallbacks, not
		// platform names, so they never participate in fuzzy matching.
		platform := ""
		if model.Platform(site.PlatformLegacy).IsDetected() {
			platform = textutil.Normalize(site.PlatformLegacy)
		}
		fields := []string{
			site.Host(),
			platform,
			textutil.Normalize(site.IndustryLegacy),
		}
		var approx float64
		for _, field := range fields {
			if field == "" {
				continue
			}
			// Length gap check first: it is free and rules out most rows
			// before the quadratic distance computation.
			if absInt(len(q)-len(field)) > fallbackMaxLenDelta {
				continue
			}
			if textutil.Levenshtein(q, field) <= fallbackMaxEditDist {
				approx++
			}
		}
		if approx > 0 {
			kept = append(kept, candidate{site: site, base: approx})
		}
	}
	return kept, nil
}
