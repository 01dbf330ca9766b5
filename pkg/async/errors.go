package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the duration elapses first.
	ErrTimeout = errors.New("async: operation timed out")
	// ErrNoFutures is returned when a coordination helper receives no futures.
	ErrNoFutures = errors.New("async: no futures provided")
)
