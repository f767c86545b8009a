// Package queue provides an unbounded FIFO queue whose Dequeue blocks until
// an item is available.
package queue

import (
	"context"
	"sync"
)

type node[T any] struct {
	value T
	next  *node[T]
}

// BlockingQueue is safe for use by any number of producers and consumers.
// head == nil iff tail == nil iff the queue is empty.
type BlockingQueue[T any] struct {
	m        sync.Mutex
	notEmpty *sync.Cond
	head     *node[T]
	tail     *node[T]
	size     int
}

func New[T any]() *BlockingQueue[T] {
	q := &BlockingQueue[T]{}
	q.notEmpty = sync.NewCond(&q.m)
	return q
}

// Enqueue appends v to the tail and wakes at most one blocked consumer.
// It never blocks waiting for capacity.
func (q *BlockingQueue[T]) Enqueue(v T) {
	n := &node[T]{value: v}
	q.m.Lock()
	defer q.m.Unlock()
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.size++
	q.notEmpty.Signal()
}

// Dequeue removes and returns the head item, blocking while the queue is empty.
func (q *BlockingQueue[T]) Dequeue() T {
	q.m.Lock()
	defer q.m.Unlock()
	for q.head == nil {
		q.notEmpty.Wait()
	}
	return q.pop()
}

// DequeueContext is Dequeue that gives up with ctx.Err() once ctx is done.
// An item already present is returned even if ctx is done.
func (q *BlockingQueue[T]) DequeueContext(ctx context.Context) (T, error) {
	stop := context.AfterFunc(ctx, func() {
		q.m.Lock()
		defer q.m.Unlock()
		q.notEmpty.Broadcast()
	})
	defer stop()

	q.m.Lock()
	defer q.m.Unlock()
	for q.head == nil {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		q.notEmpty.Wait()
	}
	return q.pop(), nil
}

// Len returns a snapshot of the number of pending items.
func (q *BlockingQueue[T]) Len() int {
	q.m.Lock()
	defer q.m.Unlock()
	return q.size
}

// Drain removes every pending item and returns them in FIFO order.
func (q *BlockingQueue[T]) Drain() []T {
	q.m.Lock()
	defer q.m.Unlock()
	items := make([]T, 0, q.size)
	for q.head != nil {
		items = append(items, q.pop())
	}
	return items
}

// pop must be called with q.m held and q.head != nil.
func (q *BlockingQueue[T]) pop() T {
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	n.next = nil
	q.size--
	return n.value
}
