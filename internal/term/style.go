package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute is a bit set of text display flags.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
)

// AttrNone is the empty attribute set.
const AttrNone Attribute = 0

// Has returns true if the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns the set with attr added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

type colorKind uint8

const (
	colorUnset colorKind = iota
	colorIndexed
	colorRGB
)

// Color is a terminal color: the terminal's own default, one of the
// 256 palette entries, or a 24-bit value.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

// ColorDefault leaves the terminal's configured color in place.
var ColorDefault = Color{}

// Palette entries the default theme draws with.
var (
	ColorDarkGreen = ColorFromIndex(2)
	ColorDarkGrey  = ColorFromIndex(8)
	ColorRed       = ColorFromIndex(9)
	ColorBlue      = ColorFromIndex(12)
	ColorCyan      = ColorFromIndex(14)
)

// ColorFromIndex returns the palette color at index.
func ColorFromIndex(index uint8) Color {
	return Color{kind: colorIndexed, index: index}
}

// ColorFromRGB returns a 24-bit color.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

// IsDefault returns true for the terminal-default color.
func (c Color) IsDefault() bool {
	return c.kind == colorUnset
}

var colorNames = map[string]Color{
	"default":     ColorDefault,
	"black":       ColorFromIndex(0),
	"darkred":     ColorFromIndex(1),
	"darkgreen":   ColorFromIndex(2),
	"darkyellow":  ColorFromIndex(3),
	"darkblue":    ColorFromIndex(4),
	"darkmagenta": ColorFromIndex(5),
	"darkcyan":    ColorFromIndex(6),
	"grey":        ColorFromIndex(7),
	"darkgrey":    ColorFromIndex(8),
	"red":         ColorFromIndex(9),
	"green":       ColorFromIndex(10),
	"yellow":      ColorFromIndex(11),
	"blue":        ColorFromIndex(12),
	"magenta":     ColorFromIndex(13),
	"cyan":        ColorFromIndex(14),
	"white":       ColorFromIndex(15),
}

// ParseColor resolves a color name, a palette index, or a "#rrggbb"
// value. The empty string means the terminal default.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorDefault, nil
	}
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return ColorDefault, fmt.Errorf("color %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return ColorDefault, fmt.Errorf("color %q: %w", s, err)
		}
		return ColorFromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return ColorDefault, fmt.Errorf("color index %d out of range", n)
		}
		return ColorFromIndex(uint8(n)), nil
	}
	return ColorDefault, fmt.Errorf("unknown color %q", s)
}

// Style pairs colors with display attributes for one cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle is the terminal's own colors with no attributes.
func DefaultStyle() Style {
	return Style{}
}

// WithForeground returns the style drawn in fg.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns the style drawn over bg.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns the style with bold added.
func (s Style) Bold() Style {
	s.Attributes = s.Attributes.With(AttrBold)
	return s
}

// Dim returns the style with reduced intensity.
func (s Style) Dim() Style {
	s.Attributes = s.Attributes.With(AttrDim)
	return s
}

// Italic returns the style with italics added.
func (s Style) Italic() Style {
	s.Attributes = s.Attributes.With(AttrItalic)
	return s
}

// Underline returns the style with underline added.
func (s Style) Underline() Style {
	s.Attributes = s.Attributes.With(AttrUnderline)
	return s
}

// Blink returns the style with blink added.
func (s Style) Blink() Style {
	s.Attributes = s.Attributes.With(AttrBlink)
	return s
}

// Reverse returns the style with video reversed.
func (s Style) Reverse() Style {
	s.Attributes = s.Attributes.With(AttrReverse)
	return s
}

// Cell is one screen position's rune and style.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell is a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}
