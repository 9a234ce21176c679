package session

import (
	"reflect"
	"testing"
)

func TestMoveClamps(t *testing.T) {
	var s Selection

	s.Move(10, 5)
	if s.Highlighted() != 4 {
		t.Errorf("past-end move landed on %d, want 4", s.Highlighted())
	}
	s.Move(-99, 5)
	if s.Highlighted() != 0 {
		t.Errorf("past-start move landed on %d, want 0", s.Highlighted())
	}
	s.Move(1, 0)
	if s.Highlighted() != 0 {
		t.Errorf("move in empty list landed on %d", s.Highlighted())
	}
}

func TestClampAfterShrink(t *testing.T) {
	var s Selection
	s.Move(7, 10)

	s.Clamp(3)
	if s.Highlighted() != 2 {
		t.Errorf("clamp to 3 items landed on %d", s.Highlighted())
	}
	s.Clamp(0)
	if s.Highlighted() != 0 {
		t.Errorf("clamp to empty list landed on %d", s.Highlighted())
	}
}

func TestScrollKeepsHighlightVisible(t *testing.T) {
	var s Selection

	// Moving below the window scrolls down just enough.
	s.Move(4, 5)
	s.ScrollTo(3, 5)
	if s.ScrollOffset() != 2 {
		t.Errorf("scroll = %d, want 2", s.ScrollOffset())
	}

	// Moving above the window scrolls up to the highlight.
	s.Move(-3, 5)
	s.ScrollTo(3, 5)
	if s.ScrollOffset() != 1 {
		t.Errorf("scroll = %d, want 1", s.ScrollOffset())
	}

	// A shrunken list pulls the window back from past the end.
	s.Clamp(2)
	s.ScrollTo(3, 2)
	if s.ScrollOffset() != 0 {
		t.Errorf("scroll after shrink = %d, want 0", s.ScrollOffset())
	}
}

func TestScrollDegenerateCapacity(t *testing.T) {
	var s Selection
	s.Move(3, 10)

	s.ScrollTo(0, 10)
	if s.ScrollOffset() != 3 {
		t.Errorf("scroll with no capacity = %d, want highlight", s.ScrollOffset())
	}
}

func TestMarks(t *testing.T) {
	var s Selection

	s.ToggleMark(5)
	s.ToggleMark(2)
	s.ToggleMark(9)
	s.ToggleMark(5)

	if s.IsMarked(5) {
		t.Error("candidate 5 still marked after toggle off")
	}
	if !s.IsMarked(2) || !s.IsMarked(9) {
		t.Error("marks lost")
	}
	if got := s.MarkedCandidates(); !reflect.DeepEqual(got, []int{2, 9}) {
		t.Errorf("marked = %v, want [2 9]", got)
	}
}

func TestMarkedCandidatesEmpty(t *testing.T) {
	var s Selection
	if got := s.MarkedCandidates(); got != nil {
		t.Errorf("marks on fresh selection = %v", got)
	}
}
