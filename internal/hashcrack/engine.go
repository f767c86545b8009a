package hashcrack

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/internal/hashcrack/strategy"
)

// Match is a recovered plaintext together with the hash it reproduced.
type Match struct {
	RunID     string
	Word      string
	Candidate string
	Hash      string
	HashIndex int
	FoundAt   time.Time
}

// Reporter receives matches from many workers at once and must serialize
// its own output.
type Reporter interface {
	Report(ctx context.Context, m Match) error
}

type SearchStats struct {
	Candidates  int
	Comparisons int
	Matches     int
}

// Engine tests the candidates of one word against every target hash. An
// Engine is read-only after construction and shared by all workers.
type Engine struct {
	l        zerolog.Logger
	runID    string
	hasher   Hasher
	strategy strategy.Strategy
	hashes   *HashSet
	reporter Reporter
}

type EngineOption func(e *Engine)

func WithRunID(id string) EngineOption {
	return func(e *Engine) {
		e.runID = id
	}
}

func NewEngine(
	hasher Hasher,
	strategy strategy.Strategy,
	hashes *HashSet,
	reporter Reporter,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		hasher:   hasher,
		strategy: strategy,
		hashes:   hashes,
		reporter: reporter,
		l: log.With().
			Str("domain", "hashcrack").
			Str("type", "engine").
			Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) RunID() string {
	return e.runID
}

func (e *Engine) Hashes() *HashSet {
	return e.hashes
}

func (e *Engine) Strategy() strategy.Strategy {
	return e.strategy
}

// Search hashes every candidate of word with the salt of every target and
// reports each candidate whose digest matches. A candidate matching several
// targets is reported once per target.
func (e *Engine) Search(ctx context.Context, word string) (SearchStats, error) {
	var stats SearchStats
	var err error
	e.strategy.Candidates(word, func(candidate string) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		stats.Candidates++
		for i, rec := range e.hashes.All() {
			stats.Comparisons++
			ok, herr := e.matches(candidate, rec)
			if herr != nil {
				err = &CandidateError{Word: word, Candidate: candidate, Err: herr}
				return false
			}
			if !ok {
				continue
			}
			stats.Matches++
			e.report(ctx, Match{
				RunID:     e.runID,
				Word:      word,
				Candidate: candidate,
				Hash:      rec.String(),
				HashIndex: i,
				FoundAt:   time.Now(),
			})
		}
		return true
	})
	return stats, err
}

// matches compares only the digest part; the salt prefix of the hasher
// output is discarded.
func (e *Engine) matches(candidate string, rec HashRecord) (bool, error) {
	out, err := e.hasher.Hash(candidate, rec.Salt)
	if err != nil {
		return false, errors.Wrap(err, "hash candidate")
	}
	if len(out) != len(rec.Salt)+len(rec.Digest) {
		return false, errors.Wrapf(ErrUnexpectedHashLength, "got %d characters", len(out))
	}
	return out[len(rec.Salt):] == rec.Digest, nil
}

func (e *Engine) report(ctx context.Context, m Match) {
	e.l.Debug().
		Str("candidate", m.Candidate).
		Int("hash-index", m.HashIndex).
		Msg("found match")
	if err := e.reporter.Report(ctx, m); err != nil {
		e.l.Warn().Err(err).Str("candidate", m.Candidate).Msg("failed to report match")
	}
}
