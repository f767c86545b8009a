package queue

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockingQueue_FIFO(t *testing.T) {
	t.Run("dequeues items in enqueue order", func(t *testing.T) {
		// Prepare
		q := New[int]()
		for i := 0; i < 100; i++ {
			q.Enqueue(i)
		}

		// Execute
		got := make([]int, 0, 100)
		for i := 0; i < 100; i++ {
			got = append(got, q.Dequeue())
		}

		// Check
		for i, v := range got {
			assert.Equal(t, i, v, "item %d in order", i)
		}
		assert.Equal(t, 0, q.Len(), "queue is empty")
	})

	t.Run("keeps order across producer goroutines", func(t *testing.T) {
		// Prepare
		q := New[int]()
		var m sync.Mutex
		var order []int
		var wg sync.WaitGroup
		for p := 0; p < 8; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					v := p*1000 + i
					m.Lock()
					q.Enqueue(v)
					order = append(order, v)
					m.Unlock()
				}
			}(p)
		}
		wg.Wait()

		// Execute
		got := make([]int, 0, len(order))
		for range order {
			got = append(got, q.Dequeue())
		}

		// Check
		assert.Equal(t, order, got, "global enqueue order preserved")
	})
}

func TestBlockingQueue_ConcurrentConsumers(t *testing.T) {
	t.Run("no item is observed twice", func(t *testing.T) {
		// Prepare
		const k = 2000
		q := New[int]()
		results := make(chan int, k)
		var wg sync.WaitGroup
		for c := 0; c < 8; c++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					v := q.Dequeue()
					if v < 0 {
						return
					}
					results <- v
				}
			}()
		}

		// Execute
		for i := 0; i < k; i++ {
			q.Enqueue(i)
		}
		for c := 0; c < 8; c++ {
			q.Enqueue(-1)
		}
		wg.Wait()
		close(results)

		// Check
		var got []int
		for v := range results {
			got = append(got, v)
		}
		sort.Ints(got)
		require.Len(t, got, k, "every item consumed once")
		for i, v := range got {
			assert.Equal(t, i, v)
		}
	})
}

func TestBlockingQueue_Dequeue(t *testing.T) {
	t.Run("blocks until an item is enqueued", func(t *testing.T) {
		// Prepare
		q := New[string]()
		done := make(chan string)
		go func() {
			done <- q.Dequeue()
		}()

		// Execute
		select {
		case <-done:
			t.Fatal("dequeue returned on empty queue")
		case <-time.After(50 * time.Millisecond):
		}
		q.Enqueue("word")

		// Check
		select {
		case v := <-done:
			assert.Equal(t, "word", v, "returns the enqueued item")
		case <-time.After(time.Second):
			t.Fatal("dequeue was not woken")
		}
	})
}

func TestBlockingQueue_DequeueContext(t *testing.T) {
	t.Run("returns context error when cancelled", func(t *testing.T) {
		// Prepare
		q := New[int]()
		ctx, cancel := context.WithCancel(context.Background())
		errC := make(chan error)
		go func() {
			_, err := q.DequeueContext(ctx)
			errC <- err
		}()

		// Execute
		time.Sleep(20 * time.Millisecond)
		cancel()

		// Check
		select {
		case err := <-errC:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("dequeue ignored cancellation")
		}
	})

	t.Run("returns pending item", func(t *testing.T) {
		// Prepare
		q := New[int]()
		q.Enqueue(7)

		// Execute
		v, err := q.DequeueContext(context.Background())

		// Check
		assert.NoError(t, err)
		assert.Equal(t, 7, v)
	})
}

func TestBlockingQueue_Drain(t *testing.T) {
	t.Run("removes all pending items", func(t *testing.T) {
		// Prepare
		q := New[int]()
		q.Enqueue(1)
		q.Enqueue(2)
		q.Enqueue(3)

		// Execute
		items := q.Drain()

		// Check
		assert.Equal(t, []int{1, 2, 3}, items)
		assert.Equal(t, 0, q.Len())
		q.Enqueue(4)
		assert.Equal(t, 4, q.Dequeue(), "queue usable after drain")
	})
}
