package view

import (
	"strings"
	"testing"

	"github.com/Jacobious52/picky/internal/term"
)

func drawFrame(t *testing.T, width, height int, f Frame) *term.NullBackend {
	t.Helper()
	b := term.NewNullBackend(width, height)
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	New(b, DefaultTheme()).Draw(f)
	return b
}

func TestDrawLayout(t *testing.T) {
	f := Frame{
		Prompt: "> ",
		Query:  "ap",
		Cursor: 2,
		Rows: []Row{
			{Text: "apple", Positions: []int{0, 1}, Selected: true},
			{Text: "apply", Positions: []int{0, 1}},
		},
		Matched: 2,
		Total:   3,
	}
	b := drawFrame(t, 40, 10, f)

	row0 := b.RowText(0)
	if !strings.HasPrefix(row0, "> ap") {
		t.Errorf("prompt row = %q", row0)
	}
	if !strings.HasSuffix(row0, "2/3") {
		t.Errorf("prompt row %q missing count", row0)
	}
	if got := b.RowText(1); got != "1> apple" {
		t.Errorf("selected row = %q", got)
	}
	if got := b.RowText(2); got != "2: apply" {
		t.Errorf("second row = %q", got)
	}
	if got := b.RowText(3); got != "" {
		t.Errorf("row past the window = %q", got)
	}
	if b.Shows() != 1 {
		t.Errorf("Shows = %d, want one flush", b.Shows())
	}
}

func TestMatchedRuneEmphasis(t *testing.T) {
	f := Frame{
		Prompt: "> ",
		Query:  "ap",
		Rows: []Row{
			{Text: "apple", Positions: []int{0, 1}, Selected: true},
			{Text: "apply", Positions: []int{0, 1}},
		},
	}
	b := drawFrame(t, 40, 10, f)

	// Selected row: matched runes carry the emphasis attributes and
	// the whole text sits on the selection background.
	matched := b.CellAt(3, 1)
	if matched.Rune != 'a' {
		t.Fatalf("cell (3,1) = %q, want first text rune", matched.Rune)
	}
	for _, attr := range []term.Attribute{term.AttrUnderline, term.AttrBold, term.AttrItalic} {
		if !matched.Style.Attributes.Has(attr) {
			t.Errorf("matched rune missing attribute %b", attr)
		}
	}
	if matched.Style.Background != term.ColorDarkGrey {
		t.Errorf("selected matched rune background = %+v", matched.Style.Background)
	}

	plain := b.CellAt(5, 1)
	if plain.Rune != 'p' || plain.Style.Attributes.Has(term.AttrUnderline) {
		t.Errorf("unmatched rune cell = %+v", plain)
	}
	if plain.Style.Background != term.ColorDarkGrey {
		t.Errorf("selected unmatched rune background = %+v", plain.Style.Background)
	}

	// Unselected row: emphasis without the selection background.
	other := b.CellAt(3, 2)
	if !other.Style.Attributes.Has(term.AttrUnderline) {
		t.Error("unselected matched rune lost emphasis")
	}
	if other.Style.Background != term.ColorDefault {
		t.Errorf("unselected row background = %+v", other.Style.Background)
	}
}

func TestWideRuneEmphasis(t *testing.T) {
	f := Frame{
		Prompt: "> ",
		Rows:   []Row{{Text: "日本語", Positions: []int{1}}},
	}
	b := drawFrame(t, 40, 10, f)

	if got := b.RowText(1); got != "1: 日本語" {
		t.Errorf("row = %q", got)
	}
	cell := b.CellAt(5, 1)
	if cell.Rune != '本' {
		t.Fatalf("cell (5,1) = %q, want 本", cell.Rune)
	}
	if !cell.Style.Attributes.Has(term.AttrUnderline) {
		t.Error("matched wide rune lost emphasis")
	}
}

func TestHeaderLine(t *testing.T) {
	f := Frame{
		Prompt: "> ",
		Header: "recent files",
		Rows:   []Row{{Text: "alpha", Selected: true}},
	}
	b := drawFrame(t, 40, 10, f)

	if got := b.RowText(1); got != "   recent files" {
		t.Errorf("header row = %q", got)
	}
	if got := b.CellAt(headerIndent, 1); got.Style.Foreground != term.ColorDarkGreen {
		t.Errorf("header style = %+v", got.Style)
	}
	if got := b.RowText(2); got != "1> alpha" {
		t.Errorf("first row below header = %q", got)
	}
}

func TestCursorPlacement(t *testing.T) {
	b := drawFrame(t, 40, 10, Frame{Prompt: "> ", Query: "abc", Cursor: 1})
	if x, y, vis := b.CursorPosition(); !vis || x != 3 || y != 0 {
		t.Errorf("cursor = (%d,%d) visible=%v, want (3,0)", x, y, vis)
	}

	// A wide rune before the caret advances it two columns.
	b = drawFrame(t, 40, 10, Frame{Prompt: "> ", Query: "日本", Cursor: 1})
	if x, _, _ := b.CursorPosition(); x != 4 {
		t.Errorf("cursor after wide rune = %d, want 4", x)
	}
}

func TestCountOmittedWhenNarrow(t *testing.T) {
	f := Frame{Prompt: "> ", Query: "abcd", Cursor: 4, Matched: 1, Total: 1}
	b := drawFrame(t, 6, 2, f)

	if got := b.RowText(0); got != "> abcd" {
		t.Errorf("narrow prompt row = %q", got)
	}
}

func TestLongRowClipped(t *testing.T) {
	f := Frame{Prompt: "> ", Rows: []Row{{Text: "abcdefghijklmnop"}}}
	b := drawFrame(t, 12, 4, f)

	if got := b.RowText(1); got != "1: abcdefghi" {
		t.Errorf("clipped row = %q", got)
	}
}

func TestDegenerateSurfaces(t *testing.T) {
	f := Frame{
		Prompt: "> ",
		Query:  "q",
		Rows:   []Row{{Text: "alpha"}, {Text: "beta"}},
	}

	b := drawFrame(t, 20, 1, f)
	if got := b.RowText(0); !strings.HasPrefix(got, "> q") {
		t.Errorf("single-line surface row = %q", got)
	}

	// Zero-height and zero-width surfaces draw nothing but flush.
	for _, dims := range [][2]int{{10, 0}, {0, 5}} {
		b := drawFrame(t, dims[0], dims[1], f)
		if b.Shows() != 1 {
			t.Errorf("surface %v: Shows = %d", dims, b.Shows())
		}
	}
}

func TestMarkedRowNumber(t *testing.T) {
	f := Frame{
		Prompt: "> ",
		Rows:   []Row{{Text: "alpha", Marked: true}, {Text: "beta"}},
	}
	b := drawFrame(t, 40, 10, f)

	marked := b.CellAt(0, 1)
	if marked.Style.Foreground != term.ColorRed || !marked.Style.Attributes.Has(term.AttrBold) {
		t.Errorf("marked number style = %+v", marked.Style)
	}
	if plain := b.CellAt(0, 2); plain.Style.Foreground != term.ColorBlue {
		t.Errorf("plain number style = %+v", plain.Style)
	}
}

func TestListCapacity(t *testing.T) {
	tests := []struct {
		height    int
		hasHeader bool
		want      int
	}{
		{10, false, 9},
		{10, true, 8},
		{2, true, 0},
		{1, false, 0},
		{0, false, 0},
		{-1, true, 0},
	}
	for _, tt := range tests {
		if got := ListCapacity(tt.height, tt.hasHeader); got != tt.want {
			t.Errorf("ListCapacity(%d, %v) = %d, want %d", tt.height, tt.hasHeader, got, tt.want)
		}
	}
}
