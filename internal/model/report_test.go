package model

import (
	"testing"
	"time"
)

// TestEnrichmentReportLegacyFields tests legacy display field derivation.
func TestEnrichmentReportLegacyFields(t *testing.T) {
	t.Parallel()

	t.Run("joins top three platforms", func(t *testing.T) {
		t.Parallel()

		r := &EnrichmentReport{
			Platforms: []PlatformScore{
				{Platform: "Webflow", Confidence: 0.9},
				{Platform: "Next.js", Confidence: 0.6},
				{Platform: "React", Confidence: 0.4},
				{Platform: "Vue", Confidence: 0.2},
			},
		}
		if got := r.PlatformLegacy(); got != "Webflow, Next.js, React" {
			t.Errorf("got %q, expected 'Webflow, Next.js, React'", got)
		}
	})

	t.Run("no platforms yields Unknown", func(t *testing.T) {
		t.Parallel()

		r := &EnrichmentReport{}
		if got := r.PlatformLegacy(); got != "Unknown" {
			t.Errorf("got %q, expected 'Unknown'", got)
		}
		if got := r.IndustryLegacy(); got != "Unknown" {
			t.Errorf("got %q, expected 'Unknown'", got)
		}
	})

	t.Run("tags sorted by confidence descending", func(t *testing.T) {
		t.Parallel()

		r := &EnrichmentReport{
			TagConfidence: map[string]float64{
				"hero":     0.78,
				"pricing":  0.92,
				"features": 0.65,
			},
		}
		if got := r.TagsLegacy(); got != "pricing, hero, features" {
			t.Errorf("got %q, expected 'pricing, hero, features'", got)
		}
	})

	t.Run("tag ties break alphabetically", func(t *testing.T) {
		t.Parallel()

		r := &EnrichmentReport{
			TagConfidence: map[string]float64{
				"zebra": 0.5,
				"apple": 0.5,
			},
		}
		if got := r.TagsLegacy(); got != "apple, zebra" {
			t.Errorf("got %q, expected 'apple, zebra'", got)
		}
	})
}

// TestEnrichmentReportFail tests that the first failure wins.
func TestEnrichmentReportFail(t *testing.T) {
	t.Parallel()

	r := NewEnrichmentReport("https://example.com")
	r.Fail("fetch", "connection refused")
	r.Fail("persist", "should be ignored")

	if r.OK() {
		t.Error("expected report to be failed")
	}
	if r.FailedStage != "fetch" {
		t.Errorf("got stage %q, expected 'fetch'", r.FailedStage)
	}
	if r.Error != "connection refused" {
		t.Errorf("got error %q, expected 'connection refused'", r.Error)
	}
}

// TestNewBatchReport tests batch summary counting.
func TestNewBatchReport(t *testing.T) {
	t.Parallel()

	ok := NewEnrichmentReport("https://a.example.com")
	failed := NewEnrichmentReport("https://b.example.com")
	failed.Fail("validate", "URL is empty")

	br := NewBatchReport(time.Now().Add(-time.Second), []*EnrichmentReport{ok, failed, nil})

	if br.Total != 3 {
		t.Errorf("got total %d, expected 3", br.Total)
	}
	if br.Succeeded != 1 {
		t.Errorf("got succeeded %d, expected 1", br.Succeeded)
	}
	if br.Failed != 1 {
		t.Errorf("got failed %d, expected 1", br.Failed)
	}
	if br.Duration <= 0 {
		t.Error("expected positive duration")
	}
}

// TestJoinTopTags tests the shared tag-joining helper.
func TestJoinTopTags(t *testing.T) {
	t.Parallel()

	conf := map[string]float64{"a": 0.9, "b": 0.8, "c": 0.7}

	if got := JoinTopTags(conf, 2); got != "a, b" {
		t.Errorf("got %q, expected 'a, b'", got)
	}
	if got := JoinTopTags(nil, 5); got != "" {
		t.Errorf("got %q, expected empty string", got)
	}
	if got := JoinTopTags(conf, 0); got != "" {
		t.Errorf("got %q, expected empty string for zero limit", got)
	}
}
