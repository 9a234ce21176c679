// Package term abstracts the display surface and input source behind
// a small backend interface: a tcell implementation drives real
// terminals, and an in-memory one serves tests. The surface talks to
// the controlling tty, so candidate input on stdin can be a pipe.
package term

import "github.com/mattn/go-runewidth"

// Backend is the display and input surface a picker session runs
// against.
type Backend interface {
	// Init prepares the surface. Must be called before any drawing.
	Init() error

	// Shutdown restores the terminal and releases resources.
	// PollEvent returns an EventClosed event once shutdown begins.
	Shutdown()

	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetCell writes one cell. Out-of-range positions are ignored.
	SetCell(x, y int, cell Cell)

	// Clear resets every cell to empty.
	Clear()

	// Show flushes buffered changes to the display.
	Show()

	// ShowCursor places and displays the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// PostEvent queues a synthetic event, dropping it if the queue
	// is full.
	PostEvent(event Event)
}

// WriteText draws text left to right from (x, y), clipping at the
// surface edge, and returns the column after the last cell written.
// Wide runes advance two columns; zero-width runes are skipped.
func WriteText(b Backend, x, y int, text string, style Style) int {
	width, _ := b.Size()
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		b.SetCell(x, y, Cell{Rune: r, Style: style})
		x += w
	}
	return x
}

// ClearLine resets row y to empty cells.
func ClearLine(b Backend, y int) {
	width, _ := b.Size()
	for x := 0; x < width; x++ {
		b.SetCell(x, y, EmptyCell())
	}
}
