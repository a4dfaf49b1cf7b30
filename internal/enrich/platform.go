package enrich

import (
	"sort"
	"strings"

	"github.com/sampleforge/sitecatalog/internal/model"
)

// DetectPlatforms scans raw HTML for platform signatures and returns the
// detected platforms with confidence in [0,1], ranked descending.
//
// Every signature found anywhere in the lowercased HTML contributes one
// point to its platform. Raw scores become confidence via
//
//	confidence = min(1, score / max(2, total*0.4))
//
// so a lone hit on a noisy page stays low-confidence while repeated
// distinctive markers saturate toward 1. Platforms below MinConfidence
// are dropped. When no signature matches at all, the Custom sentinel is
// returned with confidence 0.5. Empty HTML yields nil.
func (d *Detector) DetectPlatforms(html string) []model.PlatformScore {
	if html == "" {
		return nil
	}
	lower := strings.ToLower(html)

	scores := make(map[string]float64)
	var total float64
	for platform, signals := range d.signatures {
		for _, sig := range signals {
			if strings.Contains(lower, sig) {
				scores[platform]++
				total++
			}
		}
	}

	if len(scores) == 0 {
		return []model.PlatformScore{{Platform: model.PlatformCustom, Confidence: 0.5}}
	}

	denom := total * 0.4
	if denom < 2.0 {
		denom = 2.0
	}

	out := make([]model.PlatformScore, 0, len(scores))
	for platform, score := range scores {
		conf := score / denom
		if conf > 1.0 {
			conf = 1.0
		}
		if conf < MinConfidence {
			continue
		}
		out = append(out, model.PlatformScore{
			Platform:   model.Platform(platform),
			Confidence: conf,
		})
	}

	// Confidence descending; name ascending on ties so repeated runs
	// over identical HTML produce identical orderings.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Platform < out[j].Platform
	})

	if len(out) == 0 {
		return nil
	}
	return out
}
