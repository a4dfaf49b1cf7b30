package search

import (
	"strings"

	"github.com/sampleforge/sitecatalog/internal/model"
	"github.com/sampleforge/sitecatalog/internal/textutil"
)

// Field weights for the additive relevance score. A domain hit is the
// strongest signal, then platform, then path and industry.
const (
	weightHost     = 5.0
	weightPath     = 4.0
	weightPlatform = 4.5
	weightIndustry = 4.0
	weightTagBase  = 2.5
	weightTypo     = 1.0
)

// Typo-tolerance bounds. Edit distance is only worth computing on short
// tokens whose lengths are already close; everything else is a guaranteed
// miss and would just burn quadratic time.
const (
	maxTypoTermLen   = 12
	maxTypoLenDelta  = 6
	maxTagLenDelta   = 2
	maxTagEditDist   = 1
	maxFieldEditDist = 1
)

// Score computes the relevance of a site for an expanded term set.
//
// The score is additive over terms: each term contributes independently
// for every field it matches, and tag matches are boosted by the tag's
// recorded confidence. Missing fields contribute zero rather than
// erroring, so malformed records degrade gracefully.
func Score(site *model.Site, terms []string) float64 {
	if site == nil || len(terms) == 0 {
		return 0
	}

	host := site.Host()
	path := site.Path()
	platform := textutil.Normalize(site.PlatformLegacy)
	industry := textutil.Normalize(site.IndustryLegacy)
	tagTokens := site.TagTokens()

	var score float64
	for _, term := range terms {
		if term == "" {
			continue
		}

		if strings.Contains(host, term) {
			score += weightHost
		}
		if path != "" && strings.Contains(path, term) {
			score += weightPath
		}
		if platform != "" && strings.Contains(platform, term) {
			score += weightPlatform
		}
		if industry != "" && strings.Contains(industry, term) {
			score += weightIndustry
		}

		// Tag matches: substring either way, or a one-edit typo on tags
		// of similar length. Confidence boosts the base weight.
		for _, tag := range tagTokens {
			if !tagMatches(term, tag) {
				continue
			}
			conf := site.TagConfidenceFor(tag)
			if conf > 1.0 {
				conf = 1.0
			}
			score += weightTagBase * (1.0 + conf)
		}

		// Small typo-tolerance bump on platform/industry. Stacks with the
		// substring bonus above when both fire.
		for _, field := range []string{platform, industry} {
			if field == "" {
				continue
			}
			if len(term) <= maxTypoTermLen && absInt(len(term)-len(field)) <= maxTypoLenDelta {
				if textutil.Levenshtein(term, field) == maxFieldEditDist {
					score += weightTypo
				}
			}
		}
	}

	return score
}

// tagMatches reports whether a term and a tag token match: containment in
// either direction, or a single-edit typo when lengths are close.
func tagMatches(term, tag string) bool {
	if tag == "" {
		return false
	}
	if strings.Contains(tag, term) || strings.Contains(term, tag) {
		return true
	}
	if absInt(len(term)-len(tag)) <= maxTagLenDelta {
		return textutil.Levenshtein(term, tag) <= maxTagEditDist
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
