package pool

import (
	"time"

	"github.com/rs/zerolog"
)

// Hooks let callers observe task lifecycle events. Any field may be nil.
// Hooks run on worker goroutines and must be safe for concurrent use.
type Hooks struct {
	OnSubmit func()
	OnStart  func()
	OnFinish func(elapsed time.Duration)
	OnFault  func(err error)
}

func (h Hooks) submit() {
	if h.OnSubmit != nil {
		h.OnSubmit()
	}
}

func (h Hooks) start() {
	if h.OnStart != nil {
		h.OnStart()
	}
}

func (h Hooks) finish(elapsed time.Duration) {
	if h.OnFinish != nil {
		h.OnFinish(elapsed)
	}
}

func (h Hooks) fault(err error) {
	if h.OnFault != nil {
		h.OnFault(err)
	}
}

type Option func(p *Pool)

func WithLogger(l zerolog.Logger) Option {
	return func(p *Pool) {
		p.l = l.With().Str("domain", "pool").Logger()
	}
}

func WithHooks(h Hooks) Option {
	return func(p *Pool) {
		p.hooks = h
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Pool) {
		p.metrics = m
	}
}
