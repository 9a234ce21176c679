package term

// EventType identifies what a terminal event carries.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize

	// EventClosed reports that the surface was shut down or lost
	// while polling. No further events will arrive.
	EventClosed
)

// Key identifies a pressed key. Printable input arrives as KeyRune
// with the Rune field set.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlN
	KeyCtrlP
	KeyCtrlU
	KeyCtrlW
)

// ModMask is a bit set of held modifier keys.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains mod.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Event is one input occurrence delivered by a Backend.
type Event struct {
	Type EventType

	// Key event fields.
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields.
	Width, Height int
}
