// Package textutil provides small text-processing primitives shared by the
// search engine and the enrichment detectors.
//
// The package deliberately contains only pure, allocation-light functions:
//   - Normalize: canonical lowercase/trimmed form used for all comparisons
//   - Levenshtein: bounded-input edit distance for typo tolerance
//
// Design decision: Levenshtein is hand-rolled rather than imported because
// callers only ever compare short tokens (a dozen characters or so) and the
// single-row dynamic programming variant is a few lines with no tuning
// knobs. Callers are responsible for bounding input length before calling;
// the function itself is O(len(a)*len(b)).
package textutil
