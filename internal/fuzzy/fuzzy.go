package fuzzy

import "unicode"

// Match represents the outcome of scoring one candidate against a query.
type Match struct {
	// Score is the match quality (higher is better, always >= 1 for a
	// non-empty query).
	Score int

	// Positions contains the rune indices of matched characters in the
	// candidate, strictly increasing, one per query rune.
	Positions []int
}

// CaseMode controls how letter case affects matching.
type CaseMode int

const (
	// CaseSmart matches case-insensitively unless the query contains an
	// uppercase letter.
	CaseSmart CaseMode = iota

	// CaseInsensitive always ignores case.
	CaseInsensitive

	// CaseSensitive always respects case.
	CaseSensitive
)

// String returns the case mode name as used in configuration.
func (m CaseMode) String() string {
	switch m {
	case CaseInsensitive:
		return "insensitive"
	case CaseSensitive:
		return "sensitive"
	default:
		return "smart"
	}
}

// Algorithm selects the matching algorithm. It is fixed at Matcher
// construction; there is no mid-session switching.
type Algorithm int

const (
	// AlgoAlign is the dynamic-programming alignment (default).
	AlgoAlign Algorithm = iota

	// AlgoScan is the greedy forward scan.
	AlgoScan

	// AlgoFzf delegates to the fzf v2 algorithm.
	AlgoFzf
)

// String returns the algorithm name as used in configuration.
func (a Algorithm) String() string {
	switch a {
	case AlgoScan:
		return "scan"
	case AlgoFzf:
		return "fzf"
	default:
		return "align"
	}
}

// ParseAlgorithm maps a configuration name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, bool) {
	switch name {
	case "align", "":
		return AlgoAlign, true
	case "scan":
		return AlgoScan, true
	case "fzf":
		return AlgoFzf, true
	}
	return AlgoAlign, false
}

// ParseCaseMode maps a configuration name to a CaseMode.
func ParseCaseMode(name string) (CaseMode, bool) {
	switch name {
	case "smart", "":
		return CaseSmart, true
	case "insensitive", "ignore":
		return CaseInsensitive, true
	case "sensitive", "respect":
		return CaseSensitive, true
	}
	return CaseSmart, false
}

// Options configures the matcher behavior.
type Options struct {
	// Algorithm selects the matching algorithm.
	Algorithm Algorithm

	// Case controls case sensitivity.
	Case CaseMode

	// Weights tunes AlgoScan scoring. The zero value uses
	// DefaultScanWeights.
	Weights ScanWeights
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Algorithm: AlgoAlign,
		Case:      CaseSmart,
	}
}

// algorithm scores one candidate against a query. The sensitive flag
// is the already-resolved case rule for this query.
type algorithm interface {
	match(query, candidate string, sensitive bool) (Match, bool)
}

// Matcher scores candidates against queries. Pure: no call mutates
// observable state, identical inputs yield identical results, and a
// single Matcher may be shared by any number of goroutines.
type Matcher struct {
	algo     algorithm
	caseMode CaseMode
}

// NewMatcher creates a matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	var algo algorithm
	switch opts.Algorithm {
	case AlgoScan:
		w := opts.Weights
		if w == (ScanWeights{}) {
			w = DefaultScanWeights()
		}
		algo = &scanAlgo{weights: w}
	case AlgoFzf:
		algo = newFzfAlgo()
	default:
		algo = newAlignAlgo()
	}
	return &Matcher{algo: algo, caseMode: opts.Case}
}

// Match scores candidate against query. It reports false when the
// query is not an in-order subsequence of the candidate under the
// active case rule. The empty query trivially matches everything with
// score 0 and no positions.
func (m *Matcher) Match(query, candidate string) (Match, bool) {
	if query == "" {
		return Match{}, true
	}
	return m.algo.match(query, candidate, m.sensitive(query))
}

// Sensitive reports whether the given query matches case-sensitively
// under the matcher's case mode.
func (m *Matcher) Sensitive(query string) bool {
	return m.sensitive(query)
}

func (m *Matcher) sensitive(query string) bool {
	switch m.caseMode {
	case CaseSensitive:
		return true
	case CaseInsensitive:
		return false
	default:
		for _, r := range query {
			if unicode.IsUpper(r) {
				return true
			}
		}
		return false
	}
}

// isWordBoundary checks if the rune at idx starts a word: beginning of
// the string, after a space or punctuation, or a camelCase transition.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}

	prev := runes[idx-1]
	curr := runes[idx]

	if unicode.IsSpace(prev) || unicode.IsPunct(prev) || unicode.IsSymbol(prev) {
		return true
	}
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return true
	}
	return false
}

// foldRunes appends the runes of s to dst, lowercased unless sensitive.
func foldRunes(dst []rune, s string, sensitive bool) []rune {
	if sensitive {
		for _, r := range s {
			dst = append(dst, r)
		}
		return dst
	}
	for _, r := range s {
		dst = append(dst, unicode.ToLower(r))
	}
	return dst
}
