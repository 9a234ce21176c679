// Package rank coordinates re-scoring of the candidate set as the
// query changes, and publishes generation-tagged rankings.
//
// Each submitted query starts a pass: the store snapshot is split into
// contiguous chunks across a fixed worker pool, every worker scores
// its chunk, and the merged result is published as one List. A new
// submit cancels the previous pass; workers also compare the pass tag
// against the current one every few hundred candidates and abandon
// superseded work, so at most about one pass of effort is wasted on a
// stale query. Consumers must still check List.Generation before
// applying a result: a slow pass can land after a newer one.
package rank

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/Jacobious52/picky/internal/diag"
	"github.com/Jacobious52/picky/internal/fuzzy"
	"github.com/Jacobious52/picky/internal/store"
)

// Match ties a score to the candidate that earned it.
type Match struct {
	// Candidate is the stable store index.
	Candidate int

	// Score is the match quality.
	Score int

	// Positions holds the matched rune indices in the candidate text.
	Positions []int
}

// List is one published ranking, sorted by score descending with ties
// broken by ascending candidate index.
type List struct {
	// Generation identifies the query revision this list answers.
	Generation uint64

	// Items are the matching candidates, best first.
	Items []Match

	// Complete is the store length the pass covered. A list whose
	// Complete is behind the store is already being recomputed.
	Complete int
}

// scorer is the matching dependency of a pass.
type scorer interface {
	Match(query, candidate string) (fuzzy.Match, bool)
}

// Options configures a Scheduler.
type Options struct {
	// Workers is the pool size. 0 means runtime.NumCPU.
	Workers int

	// CacheSize bounds the ranked-list cache. 0 disables caching.
	CacheSize int

	// Matcher scores candidates. nil uses fuzzy defaults.
	Matcher *fuzzy.Matcher

	// Logger receives worker failures and pass diagnostics.
	Logger *diag.Logger
}

// Scheduler owns the worker pool that keeps the ranking current.
type Scheduler struct {
	store   *store.Store
	matcher scorer
	workers int
	log     *diag.Logger
	cache   *cache

	results chan List

	curGen atomic.Uint64
	curSeq atomic.Uint64

	mu     sync.Mutex
	query  string
	cancel context.CancelFunc
	closed bool
}

// New creates a scheduler reading from st.
func New(st *store.Store, opts Options) *Scheduler {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = fuzzy.NewMatcher(fuzzy.DefaultOptions())
	}
	log := opts.Logger
	if log == nil {
		log = diag.Null()
	}
	s := &Scheduler{
		store:   st,
		matcher: matcher,
		workers: workers,
		log:     log.WithComponent("rank"),
		results: make(chan List, 1),
	}
	if opts.CacheSize > 0 {
		s.cache = newCache(opts.CacheSize)
	}
	return s
}

// Results delivers published rankings. The channel holds the latest
// unconsumed list; older unconsumed lists are replaced, never queued.
func (s *Scheduler) Results() <-chan List {
	return s.results
}

// Submit starts a pass for query tagged with generation, superseding
// any pass still in flight.
func (s *Scheduler) Submit(query string, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.query = query
	s.begin(query, generation)
}

// NotifyAppend re-ranks the current query over the grown store. The
// generation is unchanged: appends are not query edits.
func (s *Scheduler) NotifyAppend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.begin(s.query, s.curGen.Load())
}

// Close cancels the in-flight pass and rejects further submissions.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// begin launches a pass. The caller holds s.mu. The snapshot is taken
// here, synchronously, so a pass started by NotifyAppend always covers
// the append that triggered it.
func (s *Scheduler) begin(query string, generation uint64) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.curGen.Store(generation)
	seq := s.curSeq.Add(1)
	snap := s.store.Snapshot()
	go s.runPass(ctx, query, generation, seq, snap)
}

// checkEvery is how many candidates a worker scores between
// supersession checks.
const checkEvery = 256

func (s *Scheduler) runPass(ctx context.Context, query string, generation, seq uint64, snap []store.Candidate) {
	if s.cache != nil {
		if items, ok := s.cache.get(query, len(snap)); ok {
			s.log.Debug("cache hit for %q over %d candidates", query, len(snap))
			s.publish(List{Generation: generation, Items: items, Complete: len(snap)}, seq)
			return
		}
	}

	chunk := (len(snap) + s.workers - 1) / s.workers
	minChunk := 64
	if len(snap) < 1000 {
		minChunk = 16
	}
	if chunk < minChunk {
		chunk = minChunk
	}

	numChunks := (len(snap) + chunk - 1) / chunk
	partials := make([][]Match, numChunks)
	var wg sync.WaitGroup
	for w := 0; w < numChunks; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(snap))
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("worker panic, dropping candidates %d-%d: %v", lo, hi, r)
				}
			}()
			partials[w] = s.scoreChunk(ctx, generation, seq, query, snap[lo:hi])
		}(w, lo, hi)
	}
	wg.Wait()

	if s.superseded(ctx, generation, seq) {
		return
	}

	total := 0
	for _, p := range partials {
		total += len(p)
	}
	items := make([]Match, 0, total)
	for _, p := range partials {
		items = append(items, p...)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Candidate < items[j].Candidate
	})

	if s.cache != nil {
		s.cache.put(query, len(snap), items)
	}
	s.publish(List{Generation: generation, Items: items, Complete: len(snap)}, seq)
}

func (s *Scheduler) scoreChunk(ctx context.Context, generation, seq uint64, query string, chunk []store.Candidate) []Match {
	out := make([]Match, 0, len(chunk)/4)
	for i, c := range chunk {
		if i%checkEvery == 0 && s.superseded(ctx, generation, seq) {
			return nil
		}
		m, ok := s.matcher.Match(query, c.Text)
		if !ok {
			continue
		}
		out = append(out, Match{Candidate: c.Index, Score: m.Score, Positions: m.Positions})
	}
	return out
}

func (s *Scheduler) superseded(ctx context.Context, generation, seq uint64) bool {
	if ctx.Err() != nil {
		return true
	}
	return s.curGen.Load() != generation || s.curSeq.Load() != seq
}

// publish places the list in the results mailbox, replacing any
// unconsumed older list.
func (s *Scheduler) publish(list List, seq uint64) {
	if s.curSeq.Load() != seq {
		return
	}
	for {
		select {
		case s.results <- list:
			return
		default:
		}
		select {
		case <-s.results:
		default:
		}
	}
}
