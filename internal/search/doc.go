// Package search implements the catalog's query expansion and weighted
// ranking engine.
//
// A query flows through three phases:
//  1. Expansion: the raw query is normalized, tokenized, and widened with
//     a static synonym table (ExpandTerms).
//  2. Candidate retrieval: the record store answers a coarse OR-combined
//     substring filter over url/platform/industry/tags. When that filter
//     finds nothing, a fuzzy fallback scans all records and keeps those
//     within edit distance 2 of the query on host, platform, or industry.
//  3. Ranking: every candidate gets an additive relevance score; zero
//     scorers are dropped, the rest are stably sorted descending and the
//     requested page is sliced out.
//
// The engine is read-only and stateless per call, so it is safe under
// unbounded concurrent use.
//
// Design decision: scores are raw additive signals with no normalization
// by term count. Queries that match more of their expanded synonym set
// deliberately rank higher.
package search
