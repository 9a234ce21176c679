package session

import "unicode"

// Query is the editable query line: a rune buffer plus a caret.
// Edits that would leave the buffer are silent no-ops, and every
// mutating method reports whether anything changed.
type Query struct {
	runes  []rune
	cursor int
}

// String returns the query text.
func (q *Query) String() string {
	return string(q.runes)
}

// Len returns the query length in runes.
func (q *Query) Len() int {
	return len(q.runes)
}

// Cursor returns the caret position as a rune offset.
func (q *Query) Cursor() int {
	return q.cursor
}

// Empty returns true when no query is typed.
func (q *Query) Empty() bool {
	return len(q.runes) == 0
}

// Insert places r at the caret and advances past it.
func (q *Query) Insert(r rune) {
	q.runes = append(q.runes, 0)
	copy(q.runes[q.cursor+1:], q.runes[q.cursor:])
	q.runes[q.cursor] = r
	q.cursor++
}

// DeleteBack removes the rune before the caret.
func (q *Query) DeleteBack() bool {
	if q.cursor == 0 {
		return false
	}
	q.runes = append(q.runes[:q.cursor-1], q.runes[q.cursor:]...)
	q.cursor--
	return true
}

// DeleteForward removes the rune under the caret.
func (q *Query) DeleteForward() bool {
	if q.cursor >= len(q.runes) {
		return false
	}
	q.runes = append(q.runes[:q.cursor], q.runes[q.cursor+1:]...)
	return true
}

// DeleteWordBack removes the word before the caret: trailing spaces
// first, then runes up to the previous space.
func (q *Query) DeleteWordBack() bool {
	if q.cursor == 0 {
		return false
	}
	start := q.cursor
	for start > 0 && unicode.IsSpace(q.runes[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(q.runes[start-1]) {
		start--
	}
	q.runes = append(q.runes[:start], q.runes[q.cursor:]...)
	q.cursor = start
	return true
}

// DeleteToStart removes everything before the caret.
func (q *Query) DeleteToStart() bool {
	if q.cursor == 0 {
		return false
	}
	q.runes = append(q.runes[:0], q.runes[q.cursor:]...)
	q.cursor = 0
	return true
}

// Left moves the caret one rune left.
func (q *Query) Left() bool {
	if q.cursor == 0 {
		return false
	}
	q.cursor--
	return true
}

// Right moves the caret one rune right.
func (q *Query) Right() bool {
	if q.cursor >= len(q.runes) {
		return false
	}
	q.cursor++
	return true
}

// Home moves the caret to the start.
func (q *Query) Home() bool {
	if q.cursor == 0 {
		return false
	}
	q.cursor = 0
	return true
}

// End moves the caret past the last rune.
func (q *Query) End() bool {
	if q.cursor == len(q.runes) {
		return false
	}
	q.cursor = len(q.runes)
	return true
}
