// Package session ties the picker together: it owns the event loop
// that routes keyboard input to the query editor, feeds query
// revisions to the ranking scheduler, applies only current-generation
// results, and redraws after every state change.
//
// The loop is single-threaded. The scheduler is the only concurrent
// collaborator, and its results enter the loop through one channel;
// a result tagged with a superseded generation is dropped here no
// matter what the scheduler published.
package session

import (
	"context"
	"errors"

	"github.com/Jacobious52/picky/internal/diag"
	"github.com/Jacobious52/picky/internal/rank"
	"github.com/Jacobious52/picky/internal/store"
	"github.com/Jacobious52/picky/internal/term"
	"github.com/Jacobious52/picky/internal/view"
)

// Terminal-state errors reported by Run.
var (
	// ErrCancelled means the user backed out, or the context ended.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoCandidates means confirm was pressed with nothing to
	// select.
	ErrNoCandidates = errors.New("no candidates to select")

	// ErrBackendClosed means the display surface went away.
	ErrBackendClosed = errors.New("display surface closed")
)

// Options configures a session.
type Options struct {
	// Prompt precedes the query. Empty means "> ".
	Prompt string

	// Header is an optional line above the list.
	Header string

	// Height caps the terminal rows used. 0 fills the surface.
	Height int

	// MultiSelect enables tab marking.
	MultiSelect bool

	// Theme styles the screen. The zero value means the default
	// theme.
	Theme view.Theme

	// Logger receives loop diagnostics.
	Logger *diag.Logger
}

// Result is what a confirmed session hands back.
type Result struct {
	// Texts are the picked lines, in input order for multi-select.
	Texts []string

	// Indices are the matching candidate indices.
	Indices []int
}

// State aggregates everything the loop mutates between events.
type State struct {
	Query      Query
	Generation uint64
	List       rank.List
	Selection  Selection

	Width, Height int
}

// Session is one interactive picking run.
type Session struct {
	backend  term.Backend
	store    *store.Store
	sched    *rank.Scheduler
	renderer *view.Renderer
	ctl      *Controller
	log      *diag.Logger
	opts     Options

	state State
}

// New assembles a session over an uninitialized backend.
func New(backend term.Backend, st *store.Store, sched *rank.Scheduler, opts Options) *Session {
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	if opts.Theme == (view.Theme{}) {
		opts.Theme = view.DefaultTheme()
	}
	log := opts.Logger
	if log == nil {
		log = diag.Null()
	}
	s := &Session{
		backend:  backend,
		store:    st,
		sched:    sched,
		renderer: view.New(backend, opts.Theme),
		log:      log.WithComponent("session"),
		opts:     opts,
	}
	s.ctl = NewController(&s.state.Query)
	return s
}

// Run drives the loop until a terminal state: the confirmed picks,
// ErrCancelled, ErrNoCandidates on confirming an empty list, or
// ErrBackendClosed when the surface is lost.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if err := s.backend.Init(); err != nil {
		return Result{}, err
	}
	done := make(chan struct{})
	defer func() {
		close(done)
		s.backend.Shutdown()
	}()

	s.state.Width, s.state.Height = s.backend.Size()
	s.state.Generation = 1
	s.sched.Submit(s.state.Query.String(), s.state.Generation)

	events := make(chan term.Event, 16)
	go func() {
		for {
			ev := s.backend.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
			if ev.Type == term.EventClosed {
				return
			}
		}
	}()

	s.render()

	for {
		select {
		case <-ctx.Done():
			return Result{}, ErrCancelled

		case ev := <-events:
			switch ev.Type {
			case term.EventClosed:
				return Result{}, ErrBackendClosed

			case term.EventResize:
				s.state.Width, s.state.Height = ev.Width, ev.Height
				s.render()

			case term.EventKey:
				switch s.ctl.Handle(ev) {
				case CommandEdit:
					s.state.Generation++
					s.sched.Submit(s.state.Query.String(), s.state.Generation)
					s.render()
				case CommandRedraw:
					s.render()
				case CommandUp:
					s.moveHighlight(-1)
				case CommandDown:
					s.moveHighlight(1)
				case CommandPageUp:
					s.moveHighlight(-s.page())
				case CommandPageDown:
					s.moveHighlight(s.page())
				case CommandToggle:
					s.toggleMark(1)
				case CommandToggleUp:
					s.toggleMark(-1)
				case CommandCancel:
					return Result{}, ErrCancelled
				case CommandConfirm:
					result, ok := s.confirm()
					if !ok {
						return Result{}, ErrNoCandidates
					}
					return result, nil
				}
			}

		case l := <-s.sched.Results():
			if l.Generation != s.state.Generation {
				s.log.Debug("dropping list for generation %d, current is %d", l.Generation, s.state.Generation)
				continue
			}
			s.state.List = l
			s.state.Selection.Clamp(len(l.Items))
			s.render()
		}
	}
}

func (s *Session) moveHighlight(delta int) {
	s.state.Selection.Move(delta, len(s.state.List.Items))
	s.render()
}

// page is how far page up and down jump.
func (s *Session) page() int {
	return max(1, s.listCapacity())
}

func (s *Session) toggleMark(dir int) {
	if !s.opts.MultiSelect {
		return
	}
	items := s.state.List.Items
	if len(items) == 0 {
		return
	}
	s.state.Selection.ToggleMark(items[s.state.Selection.Highlighted()].Candidate)
	s.moveHighlight(dir)
}

// confirm resolves the picked candidates. Marked candidates win over
// the highlight; an empty list confirms nothing.
func (s *Session) confirm() (Result, bool) {
	if s.opts.MultiSelect {
		if marked := s.state.Selection.MarkedCandidates(); len(marked) > 0 {
			res := Result{
				Texts:   make([]string, 0, len(marked)),
				Indices: make([]int, 0, len(marked)),
			}
			for _, c := range marked {
				cand, ok := s.store.At(c)
				if !ok {
					continue
				}
				res.Texts = append(res.Texts, cand.Text)
				res.Indices = append(res.Indices, c)
			}
			return res, true
		}
	}
	items := s.state.List.Items
	if len(items) == 0 {
		return Result{}, false
	}
	it := items[s.state.Selection.Highlighted()]
	cand, ok := s.store.At(it.Candidate)
	if !ok {
		return Result{}, false
	}
	return Result{Texts: []string{cand.Text}, Indices: []int{it.Candidate}}, true
}

func (s *Session) listCapacity() int {
	height := s.state.Height
	if s.opts.Height > 0 {
		height = min(height, s.opts.Height)
	}
	return view.ListCapacity(height, s.opts.Header != "")
}

// render projects the state into a frame and draws it.
func (s *Session) render() {
	capacity := s.listCapacity()
	items := s.state.List.Items
	s.state.Selection.ScrollTo(capacity, len(items))

	lo := s.state.Selection.ScrollOffset()
	hi := min(lo+capacity, len(items))
	rows := make([]view.Row, 0, max(hi-lo, 0))
	for i := lo; i < hi; i++ {
		it := items[i]
		cand, ok := s.store.At(it.Candidate)
		if !ok {
			continue
		}
		rows = append(rows, view.Row{
			Text:      cand.Text,
			Positions: it.Positions,
			Selected:  i == s.state.Selection.Highlighted(),
			Marked:    s.state.Selection.IsMarked(it.Candidate),
		})
	}

	s.renderer.Draw(view.Frame{
		Prompt:  s.opts.Prompt,
		Query:   s.state.Query.String(),
		Cursor:  s.state.Query.Cursor(),
		Header:  s.opts.Header,
		Rows:    rows,
		Matched: len(items),
		Total:   s.state.List.Complete,
	})
}
