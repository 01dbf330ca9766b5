// Package async provides small future primitives for work that completes later.
//
// A Future[T] is a one-shot result shared by any number of waiters. It is the
// building block for the view cache (an in-flight load is stored as a future
// before anyone awaits it, so concurrent callers share one load) and for the
// navigation controller (every render runs as an ExecFuture).
//
// # Usage
//
//	f := async.Async(ctx, "home", loadView)
//	v, err := f.Await()
//
//	// Bounded by the caller's context instead of blocking forever:
//	v, err = f.AwaitContext(ctx)
//
// Error-only work uses Exec:
//
//	done := async.Exec(ctx, path, render)
//	if err := done.Await(); err != nil {
//		log.Println(err)
//	}
//
// # Errors
//
//   - ErrTimeout: AwaitWithTimeout exceeded its duration
//   - ErrNoFutures: ExecAny was called without futures
//
// All types are safe for concurrent use.
package async
