package session

import "sort"

// Selection tracks the highlighted row, the scroll window, and any
// multi-select marks. The highlighted index and scroll offset are
// positions in the current ranked list; marks are keyed by candidate
// index so they survive re-ranking.
type Selection struct {
	highlighted int
	scroll      int
	marks       map[int]struct{}
}

// Highlighted returns the highlighted list position.
func (s *Selection) Highlighted() int {
	return s.highlighted
}

// ScrollOffset returns the first visible list position.
func (s *Selection) ScrollOffset() int {
	return s.scroll
}

// Move shifts the highlight by delta, clamping into [0, total).
func (s *Selection) Move(delta, total int) {
	s.highlighted += delta
	s.Clamp(total)
}

// Clamp pulls the highlight back inside the list bounds.
func (s *Selection) Clamp(total int) {
	if s.highlighted >= total {
		s.highlighted = total - 1
	}
	if s.highlighted < 0 {
		s.highlighted = 0
	}
}

// ScrollTo adjusts the scroll offset the minimal amount that keeps
// the highlight inside a window of capacity rows, never scrolling
// past the end of a list of total entries.
func (s *Selection) ScrollTo(capacity, total int) {
	if capacity <= 0 {
		s.scroll = s.highlighted
		return
	}
	s.scroll = min(s.scroll, max(0, total-capacity))
	if s.highlighted < s.scroll {
		s.scroll = s.highlighted
	}
	if s.highlighted >= s.scroll+capacity {
		s.scroll = s.highlighted - capacity + 1
	}
}

// ToggleMark flips the multi-select mark on a candidate.
func (s *Selection) ToggleMark(candidate int) {
	if s.marks == nil {
		s.marks = make(map[int]struct{})
	}
	if _, ok := s.marks[candidate]; ok {
		delete(s.marks, candidate)
		return
	}
	s.marks[candidate] = struct{}{}
}

// IsMarked returns true if the candidate is marked.
func (s *Selection) IsMarked(candidate int) bool {
	_, ok := s.marks[candidate]
	return ok
}

// MarkedCandidates returns the marked candidate indices in input
// order.
func (s *Selection) MarkedCandidates() []int {
	if len(s.marks) == 0 {
		return nil
	}
	out := make([]int, 0, len(s.marks))
	for c := range s.marks {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}
