// Package store holds the candidate lines a session selects from.
//
// The store is append-only: indices are assigned once, never reused or
// reordered, so a candidate index remains a stable handle for ranking,
// marking and final output across the whole session. A single writer
// appends; any number of readers take snapshots.
package store

import "sync"

// Candidate is one selectable line with its stable index.
type Candidate struct {
	// Index is the candidate's position in append order.
	Index int

	// Text is the candidate line. Immutable once stored.
	Text string
}

// Store is an ordered, append-only collection of candidates.
type Store struct {
	mu    sync.RWMutex
	items []Candidate
}

// New creates a store pre-populated with the given lines.
func New(lines []string) *Store {
	s := &Store{items: make([]Candidate, 0, len(lines))}
	for _, line := range lines {
		s.items = append(s.items, Candidate{Index: len(s.items), Text: line})
	}
	return s
}

// Append adds one line and returns its candidate.
func (s *Store) Append(text string) Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Candidate{Index: len(s.items), Text: text}
	s.items = append(s.items, c)
	return c
}

// Len returns the number of stored candidates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns the current candidates. The returned slice is
// immutable: later appends never modify it, so workers can score a
// snapshot without further locking.
func (s *Store) Snapshot() []Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[:len(s.items):len(s.items)]
}

// At returns the candidate with the given index.
func (s *Store) At(index int) (Candidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.items) {
		return Candidate{}, false
	}
	return s.items[index], true
}
