package enrich

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// nonAlphanumeric matches everything that is not a lowercase letter,
// digit, or whitespace; used to strip punctuation before keyword counting.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

// DetectIndustries scores the combined page text against the industry
// keyword taxonomy and returns up to MaxIndustries industries with
// confidence in [0,1], ranked descending.
//
// Each keyword contributes its substring occurrence count (not
// word-boundary matches) in the lowercased, punctuation-stripped text.
// Confidence is the industry's score normalized by the best score, so
// the leading industry always sits at 1.0. Industries below
// MinConfidence are dropped. Empty text yields nil.
func (d *Detector) DetectIndustries(text string) []model.IndustryScore {
	if text == "" {
		return nil
	}
	clean := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " ")

	scores := make(map[string]float64)
	var best float64
	for industry, words := range d.keywords {
		var count int
		for _, w := range words {
			count += strings.Count(clean, w)
		}
		if count > 0 {
			scores[industry] = float64(count)
			if float64(count) > best {
				best = float64(count)
			}
		}
	}

	if len(scores) == 0 {
		return nil
	}
	if best < 1.0 {
		best = 1.0
	}

	out := make([]model.IndustryScore, 0, len(scores))
	for industry, score := range scores {
		conf := score / best
		if conf > 1.0 {
			conf = 1.0
		}
		if conf < MinConfidence {
			continue
		}
		out = append(out, model.IndustryScore{Industry: industry, Confidence: conf})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Industry < out[j].Industry
	})

	if len(out) > MaxIndustries {
		out = out[:MaxIndustries]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
