// Package report delivers recovered passwords to their sinks.
package report

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/common/amqp/publisher"
	"github.com/ykhdr/crypt-crack/internal/hashcrack"
	"github.com/ykhdr/crypt-crack/internal/store/matchstore"
	"github.com/ykhdr/crypt-crack/pkg/messages"
)

// WriterReporter prints one candidate per line. Writes are serialized so
// lines from different workers never interleave.
type WriterReporter struct {
	m sync.Mutex
	w io.Writer
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(_ context.Context, m hashcrack.Match) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, err := fmt.Fprintln(r.w, m.Candidate); err != nil {
		return errors.Wrap(err, "write match")
	}
	return nil
}

// DedupReporter forwards each distinct candidate once. A candidate whose
// report fails may be reported again by a later match.
type DedupReporter struct {
	next hashcrack.Reporter
	m    sync.Mutex
	seen map[string]struct{}
}

func NewDedupReporter(next hashcrack.Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[string]struct{}),
	}
}

func (r *DedupReporter) Report(ctx context.Context, m hashcrack.Match) error {
	r.m.Lock()
	_, dup := r.seen[m.Candidate]
	r.seen[m.Candidate] = struct{}{}
	r.m.Unlock()
	if dup {
		return nil
	}
	if err := r.next.Report(ctx, m); err != nil {
		r.m.Lock()
		delete(r.seen, m.Candidate)
		r.m.Unlock()
		return err
	}
	return nil
}

// MultiReporter fans a match out to every sink. All sinks are tried; the
// first error is returned.
type MultiReporter struct {
	l     zerolog.Logger
	sinks []hashcrack.Reporter
}

func NewMultiReporter(sinks ...hashcrack.Reporter) *MultiReporter {
	return &MultiReporter{
		sinks: sinks,
		l:     log.With().Str("domain", "report").Logger(),
	}
}

func (r *MultiReporter) Report(ctx context.Context, m hashcrack.Match) error {
	var first error
	for _, sink := range r.sinks {
		if err := sink.Report(ctx, m); err != nil {
			if first == nil {
				first = err
				continue
			}
			r.l.Warn().Err(err).Str("candidate", m.Candidate).Msg("sink failed")
		}
	}
	return first
}

// PublisherReporter publishes matches to the message broker.
type PublisherReporter struct {
	pub publisher.Publisher[messages.CrackMatch]
}

func NewPublisherReporter(pub publisher.Publisher[messages.CrackMatch]) *PublisherReporter {
	return &PublisherReporter{pub: pub}
}

func (r *PublisherReporter) Report(ctx context.Context, m hashcrack.Match) error {
	return r.pub.SendMessage(ctx, toMessage(m), publisher.Persistent, false, false)
}

// StoreReporter records matches in the match store.
type StoreReporter struct {
	store matchstore.MatchStore
}

func NewStoreReporter(store matchstore.MatchStore) *StoreReporter {
	return &StoreReporter{store: store}
}

func (r *StoreReporter) Report(ctx context.Context, m hashcrack.Match) error {
	return r.store.Save(ctx, toMessage(m))
}

func toMessage(m hashcrack.Match) *messages.CrackMatch {
	return &messages.CrackMatch{
		Id:        uuid.NewString(),
		RunId:     m.RunID,
		Candidate: m.Candidate,
		Word:      m.Word,
		Hash:      m.Hash,
		HashIndex: m.HashIndex,
		FoundAt:   m.FoundAt,
	}
}
