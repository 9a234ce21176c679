package picky

import (
	"github.com/Jacobious52/picky/internal/config"
	"github.com/Jacobious52/picky/internal/diag"
	"github.com/Jacobious52/picky/internal/fuzzy"
	"github.com/Jacobious52/picky/internal/term"
)

// Option configures a Picker.
type Option func(*Picker)

// WithConfig replaces the configuration snapshot, typically one
// layered from file and environment. Field options given after it
// override individual values, completing the defaults < file < env <
// flags < options ordering.
func WithConfig(cfg config.Config) Option {
	return func(p *Picker) {
		p.cfg = cfg
	}
}

// WithPrompt sets the text shown before the query.
func WithPrompt(prompt string) Option {
	return func(p *Picker) {
		p.cfg.Prompt = prompt
	}
}

// WithHeader adds a line above the candidate list.
func WithHeader(header string) Option {
	return func(p *Picker) {
		p.cfg.Header = header
	}
}

// WithHeight caps the terminal rows used. Zero means the full screen.
func WithHeight(height int) Option {
	return func(p *Picker) {
		p.cfg.Height = height
	}
}

// WithAlgo selects the scoring strategy.
func WithAlgo(algo fuzzy.Algorithm) Option {
	return func(p *Picker) {
		p.cfg.Algorithm = algo.String()
	}
}

// WithCaseMode selects case handling.
func WithCaseMode(mode fuzzy.CaseMode) Option {
	return func(p *Picker) {
		p.cfg.Case = mode.String()
	}
}

// WithMultiSelect enables marking several candidates with Tab.
func WithMultiSelect(enable bool) Option {
	return func(p *Picker) {
		p.cfg.MultiSelect = enable
	}
}

// WithLogger routes diagnostics to log instead of the configured
// sink.
func WithLogger(log *diag.Logger) Option {
	return func(p *Picker) {
		p.logger = log
	}
}

// WithBackend substitutes the display surface. The default is the
// real terminal; tests pass a NullBackend.
func WithBackend(b term.Backend) Option {
	return func(p *Picker) {
		p.backend = b
	}
}
