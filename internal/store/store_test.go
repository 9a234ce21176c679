package store

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewAssignsIndices(t *testing.T) {
	s := New([]string{"alpha", "beta", "gamma"})

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		c, ok := s.At(i)
		if !ok {
			t.Fatalf("At(%d) missing", i)
		}
		if c.Index != i || c.Text != want {
			t.Errorf("At(%d) = %+v, want index %d text %q", i, c, i, want)
		}
	}
}

func TestAppendExtends(t *testing.T) {
	s := New(nil)

	for i := 0; i < 5; i++ {
		c := s.Append(fmt.Sprintf("line-%d", i))
		if c.Index != i {
			t.Errorf("Append #%d got index %d", i, c.Index)
		}
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestAtOutOfRange(t *testing.T) {
	s := New([]string{"only"})

	if _, ok := s.At(-1); ok {
		t.Error("At(-1) should not resolve")
	}
	if _, ok := s.At(1); ok {
		t.Error("At(1) should not resolve")
	}
}

func TestSnapshotIsStable(t *testing.T) {
	s := New([]string{"a", "b"})
	snap := s.Snapshot()

	s.Append("c")
	s.Append("d")

	if len(snap) != 2 {
		t.Fatalf("snapshot grew to %d entries", len(snap))
	}
	if snap[0].Text != "a" || snap[1].Text != "b" {
		t.Errorf("snapshot contents changed: %+v", snap)
	}
	if got := s.Snapshot(); len(got) != 4 {
		t.Errorf("new snapshot has %d entries, want 4", len(got))
	}
}

func TestConcurrentAppendAndSnapshot(t *testing.T) {
	s := New(nil)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			s.Append(fmt.Sprintf("line-%d", i))
		}
	}()

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				snap := s.Snapshot()
				for i, c := range snap {
					if c.Index != i {
						t.Errorf("snapshot index %d holds candidate %d", i, c.Index)
						return
					}
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}
	wg.Wait()

	if s.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", s.Len())
	}
}
