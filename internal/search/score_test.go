package search

import (
	"testing"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// TestScoreFieldWeights tests the per-field contribution of a single term.
func TestScoreFieldWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		site  model.Site
		terms []string
		want  float64
	}{
		{
			name:  "host substring",
			site:  model.Site{URL: "https://shop.example.com"},
			terms: []string{"shop"},
			want:  5.0,
		},
		{
			name:  "path substring",
			site:  model.Site{URL: "https://example.com/shop/items"},
			terms: []string{"shop"},
			want:  4.0,
		},
		{
			name:  "platform substring",
			site:  model.Site{URL: "https://example.com", PlatformLegacy: "Webflow"},
			terms: []string{"webflow"},
			want:  4.5,
		},
		{
			name:  "industry substring",
			site:  model.Site{URL: "https://example.com", IndustryLegacy: "E-commerce"},
			terms: []string{"commerce"},
			want:  4.0,
		},
		{
			name:  "no match scores zero",
			site:  model.Site{URL: "https://example.com", PlatformLegacy: "Ghost", IndustryLegacy: "Media"},
			terms: []string{"fitness"},
			want:  0,
		},
		{
			name:  "missing fields contribute zero",
			site:  model.Site{},
			terms: []string{"shop"},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Score(&tt.site, tt.terms); got != tt.want {
				t.Errorf("got %f, expected %f", got, tt.want)
			}
		})
	}
}

// TestScoreTagBoost tests tag matching and confidence boosting.
func TestScoreTagBoost(t *testing.T) {
	t.Parallel()

	t.Run("tag without confidence scores base weight", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", TagsLegacy: "pricing"}
		// 2.5 * (1 + 0.0)
		if got := Score(&site, []string{"pricing"}); got != 2.5 {
			t.Errorf("got %f, expected 2.5", got)
		}
	})

	t.Run("tag confidence boosts score", func(t *testing.T) {
		t.Parallel()

		site := model.Site{
			URL:           "https://x.example.org",
			TagsLegacy:    "pricing",
			TagConfidence: map[string]float64{"pricing": 0.8},
		}
		// 2.5 * (1 + 0.8)
		if got := Score(&site, []string{"pricing"}); got != 2.5*1.8 {
			t.Errorf("got %f, expected %f", got, 2.5*1.8)
		}
	})

	t.Run("confidence above one is clamped", func(t *testing.T) {
		t.Parallel()

		site := model.Site{
			URL:           "https://x.example.org",
			TagsLegacy:    "pricing",
			TagConfidence: map[string]float64{"pricing": 3.0},
		}
		if got := Score(&site, []string{"pricing"}); got != 5.0 {
			t.Errorf("got %f, expected 5.0", got)
		}
	})

	t.Run("one-edit typo on tag still matches", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", TagsLegacy: "hero"}
		if got := Score(&site, []string{"herb"}); got != 2.5 {
			t.Errorf("got %f, expected 2.5", got)
		}
	})

	t.Run("distant tag does not match", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", TagsLegacy: "checkout"}
		if got := Score(&site, []string{"zzz"}); got != 0 {
			t.Errorf("got %f, expected 0", got)
		}
	})
}

// TestScoreTypoBonus tests the one-edit platform/industry bump.
func TestScoreTypoBonus(t *testing.T) {
	t.Parallel()

	t.Run("one edit from platform earns bonus", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", PlatformLegacy: "Ghost"}
		// "ghos" is not a substring miss: it IS a substring of "ghost",
		// so both the substring weight and the typo bonus stack.
		if got := Score(&site, []string{"ghosr"}); got != 1.0 {
			t.Errorf("got %f, expected 1.0", got)
		}
	})

	t.Run("substring and typo bonus stack", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", PlatformLegacy: "Ghost"}
		// "ghos" is a substring of "ghost" (+4.5) and one edit away (+1.0).
		if got := Score(&site, []string{"ghos"}); got != 5.5 {
			t.Errorf("got %f, expected 5.5", got)
		}
	})

	t.Run("two edits earn nothing", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", PlatformLegacy: "Webflow"}
		if got := Score(&site, []string{"webflwo"}); got != 0 {
			t.Errorf("got %f, expected 0", got)
		}
	})

	t.Run("long terms skip the typo check", func(t *testing.T) {
		t.Parallel()

		site := model.Site{URL: "https://x.example.org", PlatformLegacy: "extraordinarily"}
		if got := Score(&site, []string{"extraordinarilx"}); got != 0 {
			t.Errorf("got %f, expected 0 for term longer than 12 chars", got)
		}
	})
}

// TestScoreAdditiveOverTerms tests that terms contribute independently.
func TestScoreAdditiveOverTerms(t *testing.T) {
	t.Parallel()

	site := model.Site{
		URL:            "https://shop.example.com",
		PlatformLegacy: "Shopify",
		IndustryLegacy: "E-commerce",
	}

	single := Score(&site, []string{"shop"})
	double := Score(&site, []string{"shop", "commerce"})
	if double <= single {
		t.Errorf("more matching terms must not lower the score: %f vs %f", double, single)
	}

	// "shop" hits host (5.0) and platform substring (4.5).
	if single != 9.5 {
		t.Errorf("got %f, expected 9.5", single)
	}
}

// TestScoreNilSite tests graceful handling of degenerate input.
func TestScoreNilSite(t *testing.T) {
	t.Parallel()

	if got := Score(nil, []string{"shop"}); got != 0 {
		t.Errorf("got %f, expected 0", got)
	}
	site := model.Site{URL: "https://shop.example.com"}
	if got := Score(&site, nil); got != 0 {
		t.Errorf("got %f, expected 0", got)
	}
}
