package session

import "testing"

func typeRunes(q *Query, s string) {
	for _, r := range s {
		q.Insert(r)
	}
}

func TestInsertAtCursor(t *testing.T) {
	var q Query
	typeRunes(&q, "abc")
	if q.String() != "abc" || q.Cursor() != 3 {
		t.Fatalf("query = %q cursor %d", q.String(), q.Cursor())
	}

	q.Left()
	q.Insert('X')
	if q.String() != "abXc" || q.Cursor() != 3 {
		t.Errorf("after mid insert: %q cursor %d", q.String(), q.Cursor())
	}
}

func TestDeleteBack(t *testing.T) {
	var q Query
	typeRunes(&q, "ab")

	if !q.DeleteBack() || q.String() != "a" {
		t.Errorf("delete = %q", q.String())
	}
	q.DeleteBack()
	if q.DeleteBack() {
		t.Error("delete on empty query reported a change")
	}
	if q.String() != "" || q.Cursor() != 0 {
		t.Errorf("emptied query = %q cursor %d", q.String(), q.Cursor())
	}
}

func TestDeleteForward(t *testing.T) {
	var q Query
	typeRunes(&q, "abc")
	q.Home()

	if !q.DeleteForward() || q.String() != "bc" || q.Cursor() != 0 {
		t.Errorf("after forward delete: %q cursor %d", q.String(), q.Cursor())
	}

	q.End()
	if q.DeleteForward() {
		t.Error("forward delete at end reported a change")
	}
}

func TestDeleteWordBack(t *testing.T) {
	tests := []struct {
		text       string
		cursor     int // -1 means end
		want       string
		wantCursor int
	}{
		{"one two", -1, "one ", 4},
		{"one two  ", -1, "one ", 4},
		{"one", -1, "", 0},
		{"  one", -1, "  ", 2},
		{"one two", 5, "one wo", 4},
	}
	for _, tt := range tests {
		var q Query
		typeRunes(&q, tt.text)
		if tt.cursor >= 0 {
			q.Home()
			for i := 0; i < tt.cursor; i++ {
				q.Right()
			}
		}
		q.DeleteWordBack()
		if q.String() != tt.want || q.Cursor() != tt.wantCursor {
			t.Errorf("%q cursor %d: got %q cursor %d, want %q cursor %d",
				tt.text, tt.cursor, q.String(), q.Cursor(), tt.want, tt.wantCursor)
		}
	}

	var q Query
	if q.DeleteWordBack() {
		t.Error("word delete on empty query reported a change")
	}
}

func TestDeleteToStart(t *testing.T) {
	var q Query
	typeRunes(&q, "abcd")
	q.Left()
	q.Left()

	if !q.DeleteToStart() || q.String() != "cd" || q.Cursor() != 0 {
		t.Errorf("after kill to start: %q cursor %d", q.String(), q.Cursor())
	}
	if q.DeleteToStart() {
		t.Error("kill at start reported a change")
	}
}

func TestCursorMovementBounds(t *testing.T) {
	var q Query
	typeRunes(&q, "ab")

	if q.Right() || q.End() {
		t.Error("movement past the end reported a change")
	}
	if !q.Home() || q.Cursor() != 0 {
		t.Errorf("home: cursor %d", q.Cursor())
	}
	if q.Left() || q.Home() {
		t.Error("movement before the start reported a change")
	}
	if !q.End() || q.Cursor() != 2 {
		t.Errorf("end: cursor %d", q.Cursor())
	}
}

func TestUnicodeEditing(t *testing.T) {
	var q Query
	typeRunes(&q, "日本語")

	q.DeleteBack()
	if q.String() != "日本" || q.Cursor() != 2 {
		t.Errorf("after delete: %q cursor %d", q.String(), q.Cursor())
	}
}
