package session

import "github.com/Jacobious52/picky/internal/term"

// Command is what a handled key asks the event loop to do.
type Command int

const (
	// CommandNone means the key changed nothing.
	CommandNone Command = iota

	// CommandEdit means the query text changed and needs re-ranking.
	CommandEdit

	// CommandRedraw means visible state moved without a text change.
	CommandRedraw

	CommandUp
	CommandDown
	CommandPageUp
	CommandPageDown
	CommandConfirm
	CommandCancel
	CommandToggle
	CommandToggleUp
)

// Controller owns query edits: it maps key events onto the query
// buffer and reports everything else as a command for the loop.
type Controller struct {
	query *Query
}

// NewController creates a controller editing q.
func NewController(q *Query) *Controller {
	return &Controller{query: q}
}

// Handle applies a key event. Out-of-bounds edits collapse to
// CommandNone.
func (c *Controller) Handle(ev term.Event) Command {
	if ev.Type != term.EventKey {
		return CommandNone
	}
	switch ev.Key {
	case term.KeyRune:
		if ev.Mod.Has(term.ModCtrl) || ev.Mod.Has(term.ModAlt) {
			return CommandNone
		}
		c.query.Insert(ev.Rune)
		return CommandEdit

	case term.KeyBackspace:
		if ev.Mod.Has(term.ModAlt) {
			return editIf(c.query.DeleteWordBack())
		}
		return editIf(c.query.DeleteBack())
	case term.KeyDelete:
		return editIf(c.query.DeleteForward())
	case term.KeyCtrlW:
		return editIf(c.query.DeleteWordBack())
	case term.KeyCtrlU:
		return editIf(c.query.DeleteToStart())

	case term.KeyLeft, term.KeyCtrlB:
		return redrawIf(c.query.Left())
	case term.KeyRight, term.KeyCtrlF:
		return redrawIf(c.query.Right())
	case term.KeyHome, term.KeyCtrlA:
		return redrawIf(c.query.Home())
	case term.KeyEnd, term.KeyCtrlE:
		return redrawIf(c.query.End())

	case term.KeyUp, term.KeyCtrlP, term.KeyCtrlK:
		return CommandUp
	case term.KeyDown, term.KeyCtrlN, term.KeyCtrlJ:
		return CommandDown
	case term.KeyPageUp:
		return CommandPageUp
	case term.KeyPageDown:
		return CommandPageDown

	case term.KeyEnter:
		return CommandConfirm
	case term.KeyEscape, term.KeyCtrlC, term.KeyCtrlG:
		return CommandCancel
	case term.KeyTab:
		return CommandToggle
	case term.KeyBacktab:
		return CommandToggleUp
	}
	return CommandNone
}

func editIf(changed bool) Command {
	if changed {
		return CommandEdit
	}
	return CommandNone
}

func redrawIf(changed bool) Command {
	if changed {
		return CommandRedraw
	}
	return CommandNone
}
