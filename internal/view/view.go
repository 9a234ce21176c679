// Package view renders picker state onto a term.Backend. Rendering
// is a pure projection of the Frame it is handed: the layout is one
// prompt line, an optional header line, and a window of ranked rows
// sized by the caller. Cost is bounded by the frame, never by the
// full candidate set.
package view

import (
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/Jacobious52/picky/internal/term"
)

// Row is one visible ranked candidate.
type Row struct {
	// Text is the candidate line.
	Text string

	// Positions holds the matched rune indices to emphasize, in
	// ascending order.
	Positions []int

	// Selected marks the highlighted row.
	Selected bool

	// Marked marks a multi-select pick.
	Marked bool
}

// Frame is everything one redraw needs.
type Frame struct {
	// Prompt is the text before the query, usually "> ".
	Prompt string

	// Query is the current query text.
	Query string

	// Cursor is the caret position as a rune offset into Query.
	Cursor int

	// Header is an optional line above the rows. Empty means none.
	Header string

	// Rows is the visible window, best match first.
	Rows []Row

	// Matched and Total feed the count indicator.
	Matched int
	Total   int
}

// Theme holds the styles each screen element is drawn with.
type Theme struct {
	Prompt        term.Style
	Query         term.Style
	Count         term.Style
	Header        term.Style
	Number        term.Style
	Marked        term.Style
	Delim         term.Style
	SelectedDelim term.Style
	Text          term.Style

	// SelectedBG shades the text of the highlighted row.
	SelectedBG term.Color

	// Match is added to the style of matched runes.
	Match term.Attribute
}

// DefaultTheme matches the picker's traditional look.
func DefaultTheme() Theme {
	return Theme{
		Prompt:        term.DefaultStyle().WithForeground(term.ColorCyan).Bold().Blink(),
		Query:         term.DefaultStyle(),
		Count:         term.DefaultStyle().Dim(),
		Header:        term.DefaultStyle().WithForeground(term.ColorDarkGreen),
		Number:        term.DefaultStyle().WithForeground(term.ColorBlue),
		Marked:        term.DefaultStyle().WithForeground(term.ColorRed).Bold(),
		Delim:         term.DefaultStyle().WithForeground(term.ColorBlue),
		SelectedDelim: term.DefaultStyle().WithForeground(term.ColorRed).Bold(),
		Text:          term.DefaultStyle(),
		SelectedBG:    term.ColorDarkGrey,
		Match:         term.AttrUnderline | term.AttrBold | term.AttrItalic,
	}
}

// headerIndent is the left margin of the header line.
const headerIndent = 3

// ListCapacity is how many ranked rows fit on a surface of the given
// height. The prompt takes one line, the header another when
// present.
func ListCapacity(height int, hasHeader bool) int {
	capacity := height - 1
	if hasHeader {
		capacity--
	}
	return max(capacity, 0)
}

// Renderer draws frames onto a backend.
type Renderer struct {
	backend term.Backend
	theme   Theme
}

// New creates a renderer for b.
func New(b term.Backend, theme Theme) *Renderer {
	return &Renderer{backend: b, theme: theme}
}

// Draw replaces the surface contents with f and flushes. Degenerate
// surfaces get as much of the frame as fits, starting with the
// prompt line.
func (r *Renderer) Draw(f Frame) {
	width, height := r.backend.Size()
	r.backend.Clear()
	if width <= 0 || height <= 0 {
		r.backend.HideCursor()
		r.backend.Show()
		return
	}

	r.drawPrompt(f, width)

	y := 1
	if f.Header != "" && y < height {
		term.WriteText(r.backend, headerIndent, y, f.Header, r.theme.Header)
		y++
	}

	capacity := min(len(f.Rows), height-y)
	for i := 0; i < capacity; i++ {
		r.drawRow(y+i, i+1, f.Rows[i], width)
	}

	r.backend.Show()
}

func (r *Renderer) drawPrompt(f Frame, width int) {
	x := term.WriteText(r.backend, 0, 0, f.Prompt, r.theme.Prompt)
	queryStart := x
	x = term.WriteText(r.backend, x, 0, f.Query, r.theme.Query)

	count := fmt.Sprintf("%d/%d", f.Matched, f.Total)
	countStart := width - runewidth.StringWidth(count)
	if countStart > x+1 {
		term.WriteText(r.backend, countStart, 0, count, r.theme.Count)
	}

	runes := []rune(f.Query)
	cursor := min(max(f.Cursor, 0), len(runes))
	cx := queryStart + runewidth.StringWidth(string(runes[:cursor]))
	r.backend.ShowCursor(min(cx, width-1), 0)
}

func (r *Renderer) drawRow(y, number int, row Row, width int) {
	numberStyle := r.theme.Number
	if row.Marked {
		numberStyle = r.theme.Marked
	}
	x := term.WriteText(r.backend, 0, y, strconv.Itoa(number), numberStyle)

	delim, delimStyle := ": ", r.theme.Delim
	if row.Selected {
		delim, delimStyle = "> ", r.theme.SelectedDelim
	}
	x = term.WriteText(r.backend, x, y, delim, delimStyle)

	base := r.theme.Text
	if row.Selected {
		base = base.WithBackground(r.theme.SelectedBG)
	}

	next := 0
	for i, ru := range []rune(row.Text) {
		w := runewidth.RuneWidth(ru)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		style := base
		for next < len(row.Positions) && row.Positions[next] < i {
			next++
		}
		if next < len(row.Positions) && row.Positions[next] == i {
			style.Attributes = style.Attributes.With(r.theme.Match)
		}
		r.backend.SetCell(x, y, term.Cell{Rune: ru, Style: style})
		x += w
	}
}
