package fuzzy

import (
	"sync"
	"unicode"
)

// Scoring constants for the alignment algorithm. The scale follows the
// affine-gap family used by fzf, so AlgoAlign and AlgoFzf rank on
// comparable magnitudes.
const (
	alignScoreMatch     = 16
	alignBonusBoundary  = 8
	alignBonusCamel     = 7
	alignBonusConsec    = 4
	alignFirstCharMult  = 2
	alignPenaltyGapOpen = 3
	alignPenaltyGapExt  = 1

	// alignUnreachable marks cells with no valid alignment. Far enough
	// from the int32 floor that bonus additions cannot wrap.
	alignUnreachable = -(1 << 29)
)

// Predecessor bits recorded per DP cell for position recovery.
const (
	traceConsec   uint8 = 1 << 0 // match extends the previous match
	traceGapFromM uint8 = 1 << 1 // gap opens directly after a match
)

// alignAlgo scores with a Smith-Waterman style local alignment over
// rune sequences. Each query rune must match in order; among all valid
// placements the highest-scoring one wins, so "mod" finds "models.go"
// at the word start rather than the first scattered subsequence.
//
// Scores use two rolling rows; positions are recovered from a compact
// per-cell predecessor trace. All working memory is pooled and reused
// across calls.
type alignAlgo struct {
	pool sync.Pool
}

func newAlignAlgo() *alignAlgo {
	a := &alignAlgo{}
	a.pool.New = func() any { return &alignScratch{} }
	return a
}

type alignScratch struct {
	qbuf  []rune  // comparison runes of the query
	cand  []rune  // original candidate runes, for boundary detection
	fold  []rune  // comparison runes of the candidate
	bonus []int16 // boundary bonus per candidate position
	rowM  []int32 // best score with query[i-1] matched at position j-1
	rowE  []int32 // best score with a gap open after the last match
	prevM []int32
	prevE []int32
	trace []uint8
}

func (a *alignAlgo) match(query, candidate string, sensitive bool) (Match, bool) {
	s := a.pool.Get().(*alignScratch)
	defer a.pool.Put(s)

	s.qbuf = foldRunes(s.qbuf[:0], query, sensitive)
	s.cand = s.cand[:0]
	for _, r := range candidate {
		s.cand = append(s.cand, r)
	}
	m, n := len(s.qbuf), len(s.cand)
	if m == 0 {
		return Match{}, true
	}
	if m > n {
		return Match{}, false
	}
	s.fold = foldRunes(s.fold[:0], candidate, sensitive)

	// Greedy subsequence pre-check: most candidates fail here and skip
	// the DP entirely.
	qi := 0
	for ci := 0; ci < n && qi < m; ci++ {
		if s.fold[ci] == s.qbuf[qi] {
			qi++
		}
	}
	if qi < m {
		return Match{}, false
	}

	s.bonus = s.bonus[:0]
	for i := range s.cand {
		s.bonus = append(s.bonus, boundaryBonus(s.cand, i))
	}

	s.rowM = growI32(s.rowM, n+1)
	s.rowE = growI32(s.rowE, n+1)
	s.prevM = growI32(s.prevM, n+1)
	s.prevE = growI32(s.prevE, n+1)
	s.trace = growU8(s.trace, m*n)

	// Row 0: no query runes matched yet. The leading gap is free, so
	// gap-state cells start at zero.
	for j := 0; j <= n; j++ {
		s.prevM[j] = alignUnreachable
		s.prevE[j] = 0
	}

	best := int32(alignUnreachable)
	bestJ := -1
	for i := 1; i <= m; i++ {
		q := s.qbuf[i-1]
		rowTrace := s.trace[(i-1)*n:]
		s.rowM[0] = alignUnreachable
		s.rowE[0] = alignUnreachable
		for j := 1; j <= n; j++ {
			mj := int32(alignUnreachable)
			var bits uint8
			if s.fold[j-1] == q {
				b := int32(s.bonus[j-1])
				viaGap := s.prevE[j-1] + alignScoreMatch + b
				if i == 1 {
					viaGap = s.prevE[j-1] + alignScoreMatch + b*alignFirstCharMult
				}
				cb := b
				if cb < alignBonusConsec {
					cb = alignBonusConsec
				}
				viaRun := s.prevM[j-1] + alignScoreMatch + cb
				if viaRun >= viaGap {
					mj = viaRun
					bits = traceConsec
				} else {
					mj = viaGap
				}
			}
			s.rowM[j] = mj

			open := s.rowM[j-1] - alignPenaltyGapOpen
			ext := s.rowE[j-1] - alignPenaltyGapExt
			if open >= ext {
				s.rowE[j] = open
				bits |= traceGapFromM
			} else {
				s.rowE[j] = ext
			}
			rowTrace[j-1] = bits

			if i == m && mj > best {
				best, bestJ = mj, j
			}
		}
		s.prevM, s.rowM = s.rowM, s.prevM
		s.prevE, s.rowE = s.rowE, s.prevE
	}

	if bestJ < 0 || best <= alignUnreachable/2 {
		return Match{}, false
	}

	positions := make([]int, m)
	i, j := m, bestJ
	for {
		positions[i-1] = j - 1
		if i == 1 {
			break
		}
		consec := s.trace[(i-1)*n+(j-1)]&traceConsec != 0
		i--
		j--
		if consec {
			continue
		}
		for s.trace[(i-1)*n+(j-1)]&traceGapFromM == 0 {
			j--
		}
		j--
	}

	score := int(best)
	if score < 1 {
		score = 1
	}
	return Match{Score: score, Positions: positions}, true
}

// boundaryBonus grades how strongly position idx starts a word: full
// bonus after a separator or at the start, a smaller one for camelCase
// and letter-to-digit transitions.
func boundaryBonus(runes []rune, idx int) int16 {
	curr := runes[idx]
	if idx == 0 {
		if isWordRune(curr) {
			return alignBonusBoundary
		}
		return 0
	}
	prev := runes[idx-1]
	if !isWordRune(prev) && isWordRune(curr) {
		return alignBonusBoundary
	}
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return alignBonusCamel
	}
	if !unicode.IsDigit(prev) && unicode.IsDigit(curr) && unicode.IsLetter(prev) {
		return alignBonusCamel
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func growI32(s []int32, n int) []int32 {
	if cap(s) < n {
		return make([]int32, n)
	}
	return s[:n]
}

func growU8(s []uint8, n int) []uint8 {
	if cap(s) < n {
		return make([]uint8, n)
	}
	return s[:n]
}
