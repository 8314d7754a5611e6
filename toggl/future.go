package toggl

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future is the pending result of an asynchronous endpoint call.
type Future[T any] struct {
	g   errgroup.Group
	val T
}

// Await blocks until the call completes and returns what the synchronous
// form would have returned. It may be called any number of times.
func (f *Future[T]) Await() (T, error) {
	err := f.g.Wait()
	return f.val, err
}

// async runs call(ctx, opts) in the background. The synchronous method is
// passed in so both forms share validation, transport and parsing.
func async[O any, R any](ctx context.Context, opts O, call func(context.Context, O) (R, error)) *Future[R] {
	f := &Future[R]{}
	f.g.Go(func() error {
		v, err := call(ctx, opts)
		f.val = v
		return err
	})
	return f
}
