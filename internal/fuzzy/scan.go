package fuzzy

import "sync"

// ScanWeights tunes AlgoScan scoring.
type ScanWeights struct {
	// BaseScore is the starting score for any match.
	BaseScore int

	// ConsecutiveBonus is added for each adjacent pair of matches.
	ConsecutiveBonus int

	// WordBoundaryBonus is added for matches at word boundaries.
	WordBoundaryBonus int

	// PrefixBonus is added when the first match is at position 0.
	PrefixBonus int

	// ExactPrefixBonus is added when the query matches the start of the
	// candidate exactly.
	ExactPrefixBonus int

	// GapPenalty is subtracted per unmatched character between matches.
	GapPenalty int

	// LeadingPenalty is subtracted per character before the first match.
	LeadingPenalty int

	// LengthBonusThreshold grants shorter candidates up to this many
	// extra points.
	LengthBonusThreshold int
}

// DefaultScanWeights returns the default scoring weights.
func DefaultScanWeights() ScanWeights {
	return ScanWeights{
		BaseScore:            100,
		ConsecutiveBonus:     20,
		WordBoundaryBonus:    15,
		PrefixBonus:          25,
		ExactPrefixBonus:     50,
		GapPenalty:           2,
		LeadingPenalty:       1,
		LengthBonusThreshold: 20,
	}
}

// scanAlgo matches with a greedy left-to-right scan: each query rune
// takes the first feasible position. Cheaper than alignment and finds
// a match whenever one exists, but the placement it scores is the
// earliest, not the best.
type scanAlgo struct {
	weights ScanWeights
	pool    sync.Pool
}

type scanScratch struct {
	qbuf []rune
	cand []rune
	fold []rune
}

func (s *scanAlgo) match(query, candidate string, sensitive bool) (Match, bool) {
	sc, _ := s.pool.Get().(*scanScratch)
	if sc == nil {
		sc = &scanScratch{}
	}
	defer s.pool.Put(sc)

	sc.qbuf = foldRunes(sc.qbuf[:0], query, sensitive)
	sc.cand = sc.cand[:0]
	for _, r := range candidate {
		sc.cand = append(sc.cand, r)
	}
	m, n := len(sc.qbuf), len(sc.cand)
	if m == 0 {
		return Match{}, true
	}
	if m > n {
		return Match{}, false
	}
	sc.fold = foldRunes(sc.fold[:0], candidate, sensitive)

	positions := make([]int, 0, m)
	qi := 0
	for ci := 0; ci < n && qi < m; ci++ {
		if sc.fold[ci] == sc.qbuf[qi] {
			positions = append(positions, ci)
			qi++
		}
	}
	if qi < m {
		return Match{}, false
	}

	return Match{
		Score:     s.weights.score(sc.qbuf, sc.cand, sc.fold, positions),
		Positions: positions,
	}, true
}

// score rates a fixed set of matched positions.
func (w ScanWeights) score(query, original, folded []rune, positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	score := w.BaseScore

	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			score += w.ConsecutiveBonus
		}
	}

	for _, idx := range positions {
		if isWordBoundary(original, idx) {
			score += w.WordBoundaryBonus
		}
	}

	if positions[0] == 0 {
		score += w.PrefixBonus
	}

	if len(positions) > 1 {
		totalGap := positions[len(positions)-1] - positions[0] - len(positions) + 1
		if totalGap > 0 {
			score -= totalGap * w.GapPenalty
		}
	}

	if positions[0] > 0 {
		score -= positions[0] * w.LeadingPenalty
	}

	if len(folded) < w.LengthBonusThreshold {
		score += w.LengthBonusThreshold - len(folded)
	}

	if len(folded) >= len(query) {
		isPrefix := true
		for i, qr := range query {
			if folded[i] != qr {
				isPrefix = false
				break
			}
		}
		if isPrefix {
			score += w.ExactPrefixBonus
		}
	}

	if score < 1 {
		score = 1
	}
	return score
}
