package enrich

import (
	"math"
	"sort"
	"strings"
)

// ExtractTags tokenizes the combined page text into lowercase words and
// returns the MaxTags most frequent meaningful ones mapped to a
// confidence in [0.2, 1.0].
//
// Words shorter than MinTagLength characters and stopwords are skipped.
// Confidence decays linearly with relative frequency:
//
//	confidence = round(min(1, 0.2 + 0.8*(freq/maxFreq)), 2)
//
// so the most frequent tag scores 1.0 and rare tags bottom out at the
// 0.2 floor. Empty text yields nil.
func (d *Detector) ExtractTags(text string) map[string]float64 {
	if text == "" {
		return nil
	}
	clean := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " ")

	freq := make(map[string]int)
	for _, word := range strings.Fields(clean) {
		if len(word) < MinTagLength {
			continue
		}
		if _, skip := d.stop[word]; skip {
			continue
		}
		freq[word]++
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	// Frequency descending, then alphabetical: the alphabetical tie-break
	// keeps the top-N cut deterministic for identical input.
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > MaxTags {
		words = words[:MaxTags]
	}

	maxFreq := float64(freq[words[0]])
	out := make(map[string]float64, len(words))
	for _, w := range words {
		conf := 0.2 + 0.8*(float64(freq[w])/maxFreq)
		if conf > 1.0 {
			conf = 1.0
		}
		out[w] = math.Round(conf*100) / 100
	}
	return out
}
