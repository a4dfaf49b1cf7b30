package textutil

import "strings"

// Normalize returns the canonical comparison form of s: leading and
// trailing whitespace removed, all characters lowercased. The empty
// string maps to itself, so Normalize is total over all inputs.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Levenshtein computes the classic edit distance between a and b:
// the minimum number of single-character insertions, deletions, and
// substitutions required to turn one string into the other.
//
// The implementation keeps a single rolling row, so memory is
// O(min(len(a), len(b))) while time remains O(len(a)*len(b)).
// Distances are computed over runes, not bytes, so multi-byte
// characters count as one edit.
//
// Properties relied on by callers:
//   - Levenshtein(a, a) == 0
//   - Levenshtein(a, b) == Levenshtein(b, a)
//   - triangle inequality holds
//
// Callers must bound input length before invoking; this function is
// intended for short tokens only.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the shorter string as the row to minimize memory.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			ins := cur[j-1] + 1
			del := prev[j] + 1
			sub := prev[j-1] + cost

			v := ins
			if del < v {
				v = del
			}
			if sub < v {
				v = sub
			}
			cur[j] = v
		}
		prev, cur = cur, prev
	}

	return prev[len(rb)]
}
