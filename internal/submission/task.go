package submission

import (
	"context"
	"time"
)

// Result is what a generation task produces.
type Result struct {
	ImageURL string
	Err      error
	Duration time.Duration
}

// Task is one cancellable in-flight generation request. Its result is
// published once, when Done is closed.
type Task struct {
	ID     string
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// startTask runs fn in a goroutine with a context derived from parent,
// bounded by timeout when timeout > 0.
func startTask(parent context.Context, id string, timeout time.Duration, fn func(ctx context.Context) Result) *Task {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	t := &Task{ID: id, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer cancel()
		t.result = fn(ctx)
		close(t.done)
	}()
	return t
}

// Done is closed once the result is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task completes and returns its result.
func (t *Task) Wait() Result {
	<-t.done
	return t.result
}

// Cancel aborts the request. The task still completes, with ErrCanceled.
func (t *Task) Cancel() {
	t.cancel()
}
