// Package fuzzy provides the matching core: scoring a single candidate
// line against a query and reporting which runes matched.
//
// A match requires every query rune to appear in the candidate in
// order; gaps are allowed. Scoring favors consecutive runs, matches on
// word boundaries (start of string, after a separator, camelCase
// transitions) and compact alignments with small gaps.
//
// # Algorithms
//
// Three interchangeable algorithms are selected at construction:
//
//   - AlgoAlign (default): dynamic-programming local alignment that
//     finds the best-scoring placement of the query, not just the
//     first one. O(candidate x query) time per call.
//   - AlgoScan: greedy left-to-right scan. Cheaper, takes the first
//     feasible placement per rune.
//   - AlgoFzf: the fzf v2 algorithm from github.com/junegunn/fzf,
//     for parity with fzf's ranking.
//
// # Case Handling
//
// CaseSmart (default) matches case-insensitively unless the query
// contains an uppercase letter, in which case the whole query becomes
// case-sensitive. CaseSensitive and CaseInsensitive force either mode.
//
// # Thread Safety
//
// A Matcher is safe for concurrent use; per-call working memory comes
// from internal pools, so steady-state matching does not allocate.
package fuzzy
