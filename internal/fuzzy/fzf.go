package fuzzy

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

// fzfAlgo delegates to fzf's FuzzyMatchV2.
//
// Both sides are pre-lowercased for insensitive matching and the algo
// is always called case-sensitively: its ASCII fast path under-folds
// case otherwise and drops valid matches. Lowercasing preserves rune
// counts, so the returned positions index the original candidate.
type fzfAlgo struct {
	slabs sync.Pool
}

func newFzfAlgo() *fzfAlgo {
	f := &fzfAlgo{}
	f.slabs.New = func() any { return util.MakeSlab(100*1024, 2048) }
	return f
}

func (f *fzfAlgo) match(query, candidate string, sensitive bool) (Match, bool) {
	pattern := []rune(query)
	text := candidate
	if !sensitive {
		pattern = []rune(strings.ToLower(query))
		text = strings.ToLower(candidate)
	}
	if len(pattern) == 0 {
		return Match{}, true
	}

	slab := f.slabs.Get().(*util.Slab)
	chars := util.ToChars([]byte(text))
	// normalize=false: matched runes must equal the query's runes under
	// the case rule, so diacritic folding is off.
	result, pos := algo.FuzzyMatchV2(true, false, true, &chars, pattern, true, slab)
	f.slabs.Put(slab)

	if result.Score <= 0 {
		return Match{}, false
	}
	var positions []int
	if pos != nil {
		positions = *pos
		sort.Ints(positions)
	}
	return Match{Score: result.Score, Positions: positions}, true
}
