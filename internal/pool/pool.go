// Package pool runs tasks on a fixed set of worker goroutines fed by a
// blocking queue.
package pool

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/internal/queue"
)

type Task func()

type State uint32

const (
	StateRunning State = iota
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting-down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type itemKind uint8

const (
	itemTask itemKind = iota
	itemShutdown
)

// item is what travels through the queue: either a task or a shutdown signal
// addressed to exactly one worker.
type item struct {
	kind itemKind
	task Task
}

type Stats struct {
	Workers   int
	Pending   int
	Submitted uint64
	Completed uint64
	Faulted   uint64
	State     State
}

type Pool struct {
	l       zerolog.Logger
	queue   *queue.BlockingQueue[item]
	workers int
	wg      sync.WaitGroup
	hooks   Hooks
	metrics *Metrics

	// submitLock orders Submit against the shutdown transition so that no
	// task can be enqueued behind the shutdown items.
	submitLock sync.RWMutex
	state      atomic.Uint32

	submitted atomic.Uint64
	completed atomic.Uint64
	faulted   atomic.Uint64
}

// New starts workerCount workers immediately. Workers block on the queue
// until tasks or the shutdown signal arrive.
func New(workerCount int, opts ...Option) (*Pool, error) {
	if workerCount <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	p := &Pool{
		queue:   queue.New[item](),
		workers: workerCount,
		l:       log.With().Str("domain", "pool").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.state.Store(uint32(StateRunning))
	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker(i)
	}
	p.l.Debug().Int("workers", workerCount).Msg("pool started")
	return p, nil
}

// Submit enqueues task without blocking. It fails once shutdown has begun.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return ErrNilTask
	}
	p.submitLock.RLock()
	defer p.submitLock.RUnlock()
	if p.State() != StateRunning {
		return ErrPoolShutdown
	}
	p.queue.Enqueue(item{kind: itemTask, task: task})
	p.submitted.Add(1)
	p.metrics.submitted()
	p.hooks.submit()
	return nil
}

// ShutdownAndJoin sends one shutdown item per worker, waits for every worker
// to exit and releases the queue. Tasks submitted before the call are all
// executed first. A second call returns ErrAlreadyShutdown.
func (p *Pool) ShutdownAndJoin() error {
	p.submitLock.Lock()
	if !p.state.CompareAndSwap(uint32(StateRunning), uint32(StateShuttingDown)) {
		p.submitLock.Unlock()
		return ErrAlreadyShutdown
	}
	for i := 0; i < p.workers; i++ {
		p.queue.Enqueue(item{kind: itemShutdown})
	}
	p.submitLock.Unlock()

	p.l.Debug().Msg("waiting for workers")
	p.wg.Wait()

	if left := p.queue.Drain(); len(left) > 0 {
		p.l.Warn().Int("items", len(left)).Msg("queue not empty after workers joined")
	}
	p.state.Store(uint32(StateStopped))
	p.l.Debug().
		Uint64("completed", p.completed.Load()).
		Uint64("faulted", p.faulted.Load()).
		Msg("pool stopped")
	return nil
}

func (p *Pool) State() State {
	return State(p.state.Load())
}

func (p *Pool) Workers() int {
	return p.workers
}

func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   p.workers,
		Pending:   p.queue.Len(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Faulted:   p.faulted.Load(),
		State:     p.State(),
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	l := p.l.With().Int("worker", id).Logger()
	for {
		it := p.queue.Dequeue()
		if it.kind == itemShutdown {
			l.Trace().Msg("worker exiting")
			return
		}
		p.execute(l, id, it.task)
	}
}

// execute runs one task. A panic is logged and counted and the worker keeps
// polling; the task itself is dropped.
func (p *Pool) execute(l zerolog.Logger, id int, task Task) {
	start := time.Now()
	p.hooks.start()
	p.metrics.started()
	defer func() {
		elapsed := time.Since(start)
		r := recover()
		p.metrics.finished(elapsed, r != nil)
		if r != nil {
			err := &TaskPanicError{Worker: id, Value: r, Stack: debug.Stack()}
			p.faulted.Add(1)
			l.Error().Err(err).Msgf("catch panic: %v\n%s", r, string(err.Stack))
			p.hooks.fault(err)
			return
		}
		p.completed.Add(1)
		p.hooks.finish(elapsed)
	}()
	task()
}
