package pool

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
	ErrNilTask            = errors.New("task is nil")
	ErrPoolShutdown       = errors.New("pool is shut down")
	ErrAlreadyShutdown    = errors.New("pool shutdown already requested")
)

// TaskPanicError is reported when a task panics inside a worker.
type TaskPanicError struct {
	Worker int
	Value  any
	Stack  []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panicked on worker %d: %v", e.Worker, e.Value)
}
