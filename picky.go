// Package picky is an interactive fuzzy line selector. It takes
// candidate lines, narrows them as the user types, and returns the
// chosen line(s).
//
//	result, err := picky.Pick(ctx, lines, picky.WithPrompt("branch: "))
//
// The picker owns the terminal while it runs. Outcomes other than a
// confirmed selection are reported through the sentinel errors
// ErrCancelled, ErrNoCandidates and ErrBackendClosed.
package picky

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Jacobious52/picky/internal/config"
	"github.com/Jacobious52/picky/internal/diag"
	"github.com/Jacobious52/picky/internal/fuzzy"
	"github.com/Jacobious52/picky/internal/rank"
	"github.com/Jacobious52/picky/internal/session"
	"github.com/Jacobious52/picky/internal/store"
	"github.com/Jacobious52/picky/internal/term"
	"github.com/Jacobious52/picky/internal/view"
)

// Session outcomes, re-exported for callers.
var (
	// ErrCancelled means the user dismissed the picker.
	ErrCancelled = session.ErrCancelled

	// ErrNoCandidates means confirm happened with nothing to pick.
	ErrNoCandidates = session.ErrNoCandidates

	// ErrBackendClosed means the display surface went away
	// mid-session.
	ErrBackendClosed = session.ErrBackendClosed
)

// Result is the outcome of a confirmed selection.
type Result struct {
	// Texts are the chosen lines, in input order for multi-select.
	Texts []string

	// Indices are the corresponding candidate indices.
	Indices []int
}

// Picker runs interactive selections. A Picker is immutable after New
// and may run any number of sessions, one at a time.
type Picker struct {
	cfg     config.Config
	theme   view.Theme
	matcher *fuzzy.Matcher
	backend term.Backend
	logger  *diag.Logger
}

// New builds a Picker from the default configuration and opts.
func New(opts ...Option) (*Picker, error) {
	p := &Picker{cfg: config.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	theme, err := themeFromConfig(p.cfg.Colors)
	if err != nil {
		return nil, err
	}
	p.theme = theme

	algo, _ := fuzzy.ParseAlgorithm(p.cfg.Algorithm)
	mode, _ := fuzzy.ParseCaseMode(p.cfg.Case)
	p.matcher = fuzzy.NewMatcher(fuzzy.Options{Algorithm: algo, Case: mode})

	if p.logger == nil {
		if p.cfg.LogFile == "" {
			p.logger = diag.Null()
		} else {
			log, err := diag.NewFile(p.cfg.LogFile, diag.ParseLevel(p.cfg.LogLevel))
			if err != nil {
				return nil, err
			}
			p.logger = log
		}
	}
	return p, nil
}

// Pick runs a session over a fixed candidate list.
func (p *Picker) Pick(ctx context.Context, lines []string) (Result, error) {
	return p.run(ctx, store.New(lines), nil)
}

// PickStream runs a session whose candidates arrive on lines while
// the user types, one candidate per receive. Closing the channel
// marks the end of input; the session itself ends only through the
// user or ctx.
func (p *Picker) PickStream(ctx context.Context, lines <-chan string) (Result, error) {
	return p.run(ctx, store.New(nil), lines)
}

// Pick is the convenience form of New followed by Picker.Pick.
func Pick(ctx context.Context, lines []string, opts ...Option) (Result, error) {
	p, err := New(opts...)
	if err != nil {
		return Result{}, err
	}
	return p.Pick(ctx, lines)
}

func (p *Picker) run(ctx context.Context, st *store.Store, stream <-chan string) (Result, error) {
	sched := rank.New(st, rank.Options{
		Workers:   p.cfg.Workers,
		CacheSize: p.cfg.CacheSize,
		Matcher:   p.matcher,
		Logger:    p.logger,
	})
	defer sched.Close()

	backend := p.backend
	if backend == nil {
		t, err := term.NewTerminal()
		if err != nil {
			return Result{}, err
		}
		backend = t
	}

	sess := session.New(backend, st, sched, session.Options{
		Prompt:      p.cfg.Prompt,
		Header:      p.cfg.Header,
		Height:      p.cfg.Height,
		MultiSelect: p.cfg.MultiSelect,
		Theme:       p.theme,
		Logger:      p.logger,
	})

	if stream != nil {
		go feed(ctx, stream, st, sched)
	}

	res, err := sess.Run(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Texts: res.Texts, Indices: res.Indices}, nil
}

// streamFlushInterval bounds how often appended lines restart the
// ranking.
const streamFlushInterval = 50 * time.Millisecond

// feed appends streamed lines to the store as they arrive. Scheduler
// pokes are coalesced on a ticker so a fast producer does not drown
// the ranking in restarts.
func feed(ctx context.Context, lines <-chan string, st *store.Store, sched *rank.Scheduler) {
	var dirty atomic.Bool
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(streamFlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if dirty.CompareAndSwap(true, false) {
					sched.NotifyAppend()
				}
			case <-done:
				if dirty.CompareAndSwap(true, false) {
					sched.NotifyAppend()
				}
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			st.Append(line)
			dirty.Store(true)
		case <-ctx.Done():
			return
		}
	}
}

// themeFromConfig overlays configured color names onto the default
// theme.
func themeFromConfig(colors config.ColorConfig) (view.Theme, error) {
	theme := view.DefaultTheme()
	set := func(name string, apply func(term.Color)) error {
		if name == "" {
			return nil
		}
		c, err := term.ParseColor(name)
		if err != nil {
			return err
		}
		apply(c)
		return nil
	}

	if err := set(colors.Prompt, func(c term.Color) {
		theme.Prompt = theme.Prompt.WithForeground(c)
	}); err != nil {
		return theme, err
	}
	if err := set(colors.Header, func(c term.Color) {
		theme.Header = theme.Header.WithForeground(c)
	}); err != nil {
		return theme, err
	}
	if err := set(colors.Number, func(c term.Color) {
		theme.Number = theme.Number.WithForeground(c)
		theme.Delim = theme.Delim.WithForeground(c)
	}); err != nil {
		return theme, err
	}
	if err := set(colors.Marker, func(c term.Color) {
		theme.SelectedDelim = theme.SelectedDelim.WithForeground(c)
		theme.Marked = theme.Marked.WithForeground(c)
	}); err != nil {
		return theme, err
	}
	if err := set(colors.Background, func(c term.Color) {
		theme.SelectedBG = c
	}); err != nil {
		return theme, err
	}
	return theme, nil
}
