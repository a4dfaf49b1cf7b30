package search

import (
	"regexp"
	"sort"

	"github.com/sampleforge/sitecatalog/internal/textutil"
)

// tokenSplitter matches any run of non-alphanumeric characters.
// Splitting on it turns a normalized query into bare tokens.
var tokenSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// ExpandTerms normalizes rawQuery, tokenizes it, and widens the token set
// with the static synonym table. The result is deduplicated and sorted so
// repeated calls yield identical slices; callers treat it as a set.
//
// An empty or whitespace-only query yields nil.
func ExpandTerms(rawQuery string) []string {
	q := textutil.Normalize(rawQuery)
	if q == "" {
		return nil
	}

	var tokens []string
	terms := make(map[string]struct{})
	for _, tok := range tokenSplitter.Split(q, -1) {
		if tok == "" {
			continue
		}
		if _, seen := terms[tok]; !seen {
			tokens = append(tokens, tok)
		}
		terms[tok] = struct{}{}
	}

	// Expand from the original tokens only; synonyms of synonyms are not
	// followed, matching the one-hop behavior of the curated table.
	for _, tok := range tokens {
		for _, syn := range synonyms[tok] {
			terms[textutil.Normalize(syn)] = struct{}{}
		}
	}

	if len(terms) == 0 {
		return nil
	}

	out := make([]string, 0, len(terms))
	for term := range terms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
