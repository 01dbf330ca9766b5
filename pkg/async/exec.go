package async

import (
	"context"
	"time"
)

// ExecFuture represents work that only reports an error.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Exec runs fn asynchronously. A context that is already canceled
// short-circuits without calling fn.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// Await waits for the work to complete and returns its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout waits at most timeout for the work to complete.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.err
	case <-timer.C:
		return ErrTimeout
	}
}

// Done is closed once the work has finished.
func (f *ExecFuture) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the work has finished without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// ExecAll waits for every future and returns the first non-nil error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	var first error
	for _, future := range futures {
		if err := future.Await(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ExecAny returns the index and error of the first future to finish.
func ExecAny(futures ...*ExecFuture) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}

	type result struct {
		index int
		err   error
	}
	done := make(chan result, len(futures))

	for i, future := range futures {
		go func(index int, f *ExecFuture) {
			done <- result{index, f.Await()}
		}(i, future)
	}

	res := <-done
	return res.index, res.err
}
