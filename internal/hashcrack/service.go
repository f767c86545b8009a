package hashcrack

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/config"
	"github.com/ykhdr/crypt-crack/internal/pool"
)

type RunSummary struct {
	RunID       string        `json:"run_id"`
	Words       int           `json:"words"`
	Candidates  int64         `json:"candidates"`
	Comparisons int64         `json:"comparisons"`
	Matches     int64         `json:"matches"`
	Faults      int64         `json:"faults"`
	Duration    time.Duration `json:"duration"`
}

// Progress is a point-in-time view of a running search.
type Progress struct {
	RunID       string     `json:"run_id"`
	State       string     `json:"state"`
	Workers     int        `json:"workers"`
	Hashes      int        `json:"hashes"`
	Words       int64      `json:"words"`
	Submitted   int64      `json:"submitted"`
	Running     int64      `json:"running"`
	Processed   int64      `json:"processed"`
	Candidates  int64      `json:"candidates"`
	Comparisons int64      `json:"comparisons"`
	Matches     int64      `json:"matches"`
	Faults      int64      `json:"faults"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
}

const (
	stateIdle    = "idle"
	stateRunning = "running"
	stateDone    = "done"
)

type Service struct {
	l        zerolog.Logger
	cfg      *config.CrackerConfig
	engine   *Engine
	poolOpts []pool.Option

	state       atomic.Value
	startedAt   atomic.Int64
	words       atomic.Int64
	submitted   atomic.Int64
	running     atomic.Int64
	processed   atomic.Int64
	candidates  atomic.Int64
	comparisons atomic.Int64
	matches     atomic.Int64
	faults      atomic.Int64
}

// NewService prepares a search over engine. The pool itself is created per
// Run with cfg.Workers workers and poolOpts.
func NewService(cfg *config.CrackerConfig, engine *Engine, poolOpts ...pool.Option) *Service {
	s := &Service{
		cfg:      cfg,
		engine:   engine,
		poolOpts: poolOpts,
		l: log.With().
			Str("domain", "hashcrack").
			Str("run-id", engine.RunID()).
			Logger(),
	}
	s.state.Store(stateIdle)
	return s
}

// Run submits one task per word, then shuts the pool down and waits for every
// task to finish. When ctx ends, submission stops and the tasks already queued
// return early; the partial summary is returned with the context error.
func (s *Service) Run(ctx context.Context, words []string) (*RunSummary, error) {
	if !s.state.CompareAndSwap(stateIdle, stateRunning) {
		return nil, errors.New("service already ran")
	}
	start := time.Now()
	s.startedAt.Store(start.UnixNano())
	s.words.Store(int64(len(words)))

	opts := append(append([]pool.Option(nil), s.poolOpts...), pool.WithHooks(s.hooks()))
	p, err := pool.New(s.cfg.Workers, opts...)
	if err != nil {
		s.state.Store(stateDone)
		return nil, errors.Wrap(err, "failed to create pool")
	}

	s.l.Info().
		Int("words", len(words)).
		Int("hashes", s.engine.Hashes().Len()).
		Int("workers", p.Workers()).
		Str("strategy", s.engine.Strategy().Name()).
		Msg("starting search")

	var runErr error
	for _, word := range words {
		if err = ctx.Err(); err != nil {
			runErr = err
			break
		}
		if err = p.Submit(s.task(ctx, word)); err != nil {
			runErr = errors.Wrapf(err, "failed to submit word %q", word)
			break
		}
	}

	if err = p.ShutdownAndJoin(); err != nil && runErr == nil {
		runErr = errors.Wrap(err, "failed to shut down pool")
	}
	s.state.Store(stateDone)

	summary := &RunSummary{
		RunID:       s.engine.RunID(),
		Words:       len(words),
		Candidates:  s.candidates.Load(),
		Comparisons: s.comparisons.Load(),
		Matches:     s.matches.Load(),
		Faults:      s.faults.Load(),
		Duration:    time.Since(start),
	}
	if runErr == nil {
		runErr = ctx.Err()
	}
	return summary, runErr
}

// hooks keeps the progress counters in step with the pool. A task counts as
// processed once it returned or panicked.
func (s *Service) hooks() pool.Hooks {
	return pool.Hooks{
		OnSubmit: func() {
			s.submitted.Add(1)
		},
		OnStart: func() {
			s.running.Add(1)
		},
		OnFinish: func(time.Duration) {
			s.running.Add(-1)
			s.processed.Add(1)
		},
		OnFault: func(error) {
			s.running.Add(-1)
			s.processed.Add(1)
			s.faults.Add(1)
		},
	}
}

func (s *Service) task(ctx context.Context, word string) pool.Task {
	return func() {
		stats, err := s.engine.Search(ctx, word)
		s.candidates.Add(int64(stats.Candidates))
		s.comparisons.Add(int64(stats.Comparisons))
		s.matches.Add(int64(stats.Matches))
		if err == nil {
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		s.faults.Add(1)
		s.l.Warn().Err(err).Str("word", word).Msg("task failed")
	}
}

func (s *Service) Progress() Progress {
	p := Progress{
		RunID:       s.engine.RunID(),
		State:       s.state.Load().(string),
		Workers:     s.cfg.Workers,
		Hashes:      s.engine.Hashes().Len(),
		Words:       s.words.Load(),
		Submitted:   s.submitted.Load(),
		Running:     s.running.Load(),
		Processed:   s.processed.Load(),
		Candidates:  s.candidates.Load(),
		Comparisons: s.comparisons.Load(),
		Matches:     s.matches.Load(),
		Faults:      s.faults.Load(),
	}
	if ns := s.startedAt.Load(); ns != 0 {
		startedAt := time.Unix(0, ns)
		p.StartedAt = &startedAt
	}
	return p
}
