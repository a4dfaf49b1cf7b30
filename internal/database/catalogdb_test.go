package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// openTestDB creates a CatalogDB in a temporary directory.
func openTestDB(t *testing.T) *CatalogDB {
	t.Helper()

	cdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := cdb.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return cdb
}

// testSite builds a fully populated site for storage tests.
func testSite(url string) *model.Site {
	primary := "#112233"
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &model.Site{
		URL:            url,
		PlatformLegacy: "Webflow",
		IndustryLegacy: "Portfolio, Design",
		TagsLegacy:     "design, studio",
		Platforms:      []string{"Webflow"},
		Industries:     []string{"Portfolio", "Design"},
		TagConfidence:  map[string]float64{"design": 1.0, "studio": 0.6},
		Colors:         model.Colors{Primary: &primary},
		EnrichmentSignals: &model.Signals{
			PlatformScores: map[string]float64{"Webflow": 0.9},
			ContentHash:    "deadbeef",
		},
		LastEnrichedAt: &now,
	}
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database file when allowed", func(t *testing.T) {
		t.Parallel()

		cdb, err := Open(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer func() {
			_ = cdb.Close()
		}()
	})

	t.Run("refuses missing database when creation disabled", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected an error for a missing database")
		}
	})
}

// TestInsertSite tests inserts and the duplicate URL guard.
func TestInsertSite(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	stored, err := cdb.InsertSite(ctx, testSite("https://example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID == 0 {
		t.Error("expected a storage-assigned ID")
	}

	_, err = cdb.InsertSite(ctx, testSite("https://example.com"))
	if !errors.Is(err, ErrDuplicateURL) {
		t.Fatalf("got error %v, expected ErrDuplicateURL", err)
	}
}

// TestGetSiteByURL tests round-tripping a fully populated record.
func TestGetSiteByURL(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	if _, err := cdb.InsertSite(ctx, testSite("https://example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cdb.GetSiteByURL(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.PlatformLegacy != "Webflow" {
		t.Errorf("got platform %q, expected %q", got.PlatformLegacy, "Webflow")
	}
	if len(got.Platforms) != 1 || got.Platforms[0] != "Webflow" {
		t.Errorf("got platforms %v, expected [Webflow]", got.Platforms)
	}
	if len(got.Industries) != 2 {
		t.Errorf("got industries %v, expected two entries", got.Industries)
	}
	if got.TagConfidence["design"] != 1.0 {
		t.Errorf("got tag confidence %v, expected design=1.0", got.TagConfidence)
	}
	if got.Colors.Primary == nil || *got.Colors.Primary != "#112233" {
		t.Errorf("got colors %+v, expected primary #112233", got.Colors)
	}
	if got.Colors.Secondary != nil {
		t.Errorf("got secondary %v, expected nil", got.Colors.Secondary)
	}
	if got.EnrichmentSignals == nil || got.EnrichmentSignals.ContentHash != "deadbeef" {
		t.Errorf("got signals %+v, expected content hash deadbeef", got.EnrichmentSignals)
	}
	if got.LastEnrichedAt == nil || got.LastEnrichedAt.IsZero() {
		t.Error("expected a parsed LastEnrichedAt")
	}
	if got.LastUsedAt != nil {
		t.Errorf("got LastUsedAt %v, expected nil for a never-used site", got.LastUsedAt)
	}

	_, err = cdb.GetSiteByURL(ctx, "https://missing.example")
	if !errors.Is(err, ErrSiteNotFound) {
		t.Fatalf("got error %v, expected ErrSiteNotFound", err)
	}
}

// TestUpsertByURL tests that re-enrichment replaces derived fields.
func TestUpsertByURL(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	first, err := cdb.UpsertByURL(ctx, testSite("https://example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mark the site used so we can verify usage metadata survives.
	usedAt := time.Now().UTC()
	if err := cdb.UpdateLastUsed(ctx, first.ID, usedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := testSite("https://example.com")
	updated.PlatformLegacy = "Next.js"
	updated.Platforms = []string{"Next.js"}
	updated.TagConfidence = nil

	second, err := cdb.UpsertByURL(ctx, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("got ID %d, expected the original %d", second.ID, first.ID)
	}
	if second.PlatformLegacy != "Next.js" {
		t.Errorf("got platform %q, expected the replaced value", second.PlatformLegacy)
	}
	if second.TagConfidence != nil {
		t.Errorf("got tag confidence %v, expected it cleared", second.TagConfidence)
	}
	if second.LastUsedAt == nil {
		t.Error("expected usage metadata to survive re-enrichment")
	}
	if second.HeatScore == 0 {
		t.Error("expected the heat score to survive re-enrichment")
	}

	count, err := cdb.CountSites(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d sites, expected 1", count)
	}
}

// TestFindBySubstring tests the coarse case-insensitive filter.
func TestFindBySubstring(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	sites := []*model.Site{
		{URL: "https://acme-store.com", PlatformLegacy: "Shopify", IndustryLegacy: "E-commerce", TagsLegacy: "shop, deals"},
		{URL: "https://studio.example", PlatformLegacy: "Webflow", IndustryLegacy: "Design", TagsLegacy: "portfolio"},
		{URL: "https://blog.example", PlatformLegacy: "WordPress", IndustryLegacy: "Blog", TagsLegacy: "writing"},
	}
	for _, s := range sites {
		if _, err := cdb.InsertSite(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	t.Run("matches any field for any term", func(t *testing.T) {
		t.Parallel()

		got, err := cdb.FindBySubstring(ctx, []string{"website_url", "platform", "industry", "tags"}, []string{"shop"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].URL != "https://acme-store.com" {
			t.Errorf("got %v, expected only the store", got)
		}
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		t.Parallel()

		got, err := cdb.FindBySubstring(ctx, []string{"platform"}, []string{"WEBFLOW"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].PlatformLegacy != "Webflow" {
			t.Errorf("got %v, expected the Webflow site", got)
		}
	})

	t.Run("multiple terms union results in id order", func(t *testing.T) {
		t.Parallel()

		got, err := cdb.FindBySubstring(ctx, []string{"industry"}, []string{"design", "blog"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d sites, expected 2", len(got))
		}
		if got[0].URL != "https://studio.example" || got[1].URL != "https://blog.example" {
			t.Errorf("got %v, expected id order", got)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := cdb.FindBySubstring(ctx, []string{"heat_score"}, []string{"x"})
		if !errors.Is(err, ErrUnknownField) {
			t.Fatalf("got error %v, expected ErrUnknownField", err)
		}
	})

	t.Run("empty terms yield no rows", func(t *testing.T) {
		t.Parallel()

		got, err := cdb.FindBySubstring(ctx, []string{"platform"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("got %v, expected nil", got)
		}
	})
}

// TestUpdateLastUsed tests usage tracking and heat refresh.
func TestUpdateLastUsed(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	stored, err := cdb.InsertSite(ctx, testSite("https://example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now := time.Now().UTC()
	if err := cdb.UpdateLastUsed(ctx, stored.ID, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cdb.GetSiteByID(ctx, stored.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastUsedAt == nil {
		t.Fatal("expected LastUsedAt to be set")
	}
	if got.HeatScore != 100 {
		t.Errorf("got heat score %v, expected 100 for a just-used site", got.HeatScore)
	}

	if err := cdb.UpdateLastUsed(ctx, 9999, now); !errors.Is(err, ErrSiteNotFound) {
		t.Fatalf("got error %v, expected ErrSiteNotFound", err)
	}
}

// TestRefreshHeatScores tests recomputing heat from stored usage times.
func TestRefreshHeatScores(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	used := testSite("https://hot.example")
	lastUsed := time.Now().UTC().Add(-time.Hour)
	used.LastUsedAt = &lastUsed

	never := testSite("https://cold.example")
	never.LastUsedAt = nil

	for _, s := range []*model.Site{used, never} {
		if _, err := cdb.InsertSite(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := cdb.RefreshHeatScores(ctx, time.Now().UTC()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hot, err := cdb.GetSiteByURL(ctx, "https://hot.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hot.HeatScore < 70 {
		t.Errorf("got heat %v, expected the hot band for a recently used site", hot.HeatScore)
	}

	cold, err := cdb.GetSiteByURL(ctx, "https://cold.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cold.HeatScore != 0 {
		t.Errorf("got heat %v, expected 0 for a never-used site", cold.HeatScore)
	}
}

// TestTagFeedback tests the append-only suggestion store.
func TestTagFeedback(t *testing.T) {
	t.Parallel()

	cdb := openTestDB(t)
	ctx := context.Background()

	stored, err := cdb.InsertSite(ctx, testSite("https://example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linked := &model.TagFeedback{
		SiteID:        &stored.ID,
		URL:           "https://example.com",
		SuggestedTags: "minimal, typography",
	}
	if _, err := cdb.InsertTagFeedback(ctx, linked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orphan := &model.TagFeedback{
		URL:           "https://unknown.example",
		SuggestedTags: "mystery",
	}
	if _, err := cdb.InsertTagFeedback(ctx, orphan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cdb.ListTagFeedback(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d feedback rows, expected 2", len(got))
	}

	// Newest first.
	if got[0].URL != "https://unknown.example" {
		t.Errorf("got first row %q, expected the newest", got[0].URL)
	}
	if got[0].SiteID != nil {
		t.Errorf("got site ID %v, expected nil for an uncataloged URL", got[0].SiteID)
	}
	if got[1].SiteID == nil || *got[1].SiteID != stored.ID {
		t.Errorf("got site ID %v, expected %d", got[1].SiteID, stored.ID)
	}
	if got[1].CreatedAt.IsZero() {
		t.Error("expected a parsed CreatedAt")
	}
}
