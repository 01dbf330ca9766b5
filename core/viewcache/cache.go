package viewcache

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/pkg/async"
)

// Loader produces the value for key.
type Loader[V any] func(ctx context.Context, key string) (V, error)

// Option configures a Cache.
type Option func(*options)

type options struct {
	cacheFailures bool
	logger        *slog.Logger
}

// WithCacheFailures keeps failed loads in the cache, so every later Load for
// the key returns the same error.
func WithCacheFailures() Option {
	return func(o *options) {
		o.cacheFailures = true
	}
}

// WithLogger sets the logger for load failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Cache holds one future per key.
type Cache[V any] struct {
	loader Loader[V]
	opts   options

	mu      sync.Mutex
	entries map[string]*async.Future[V]
}

// New creates a cache backed by loader. It panics on a nil loader.
func New[V any](loader Loader[V], opts ...Option) *Cache[V] {
	if loader == nil {
		panic(ErrNilLoader)
	}

	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[V]{
		loader:  loader,
		opts:    o,
		entries: make(map[string]*async.Future[V]),
	}
}

// Load returns the value for key, starting the loader if no load is cached
// or in flight. A canceled ctx stops the wait, not the load.
func (c *Cache[V]) Load(ctx context.Context, key string) (V, error) {
	c.mu.Lock()
	f, ok := c.entries[key]
	if !ok {
		f = c.start(ctx, key)
		c.entries[key] = f
	}
	c.mu.Unlock()

	v, err := f.AwaitContext(ctx)
	if err == nil {
		return v, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return v, err
	}
	return v, errors.Join(ErrLoadFailed, err)
}

// start must be called with c.mu held. The loader goroutine takes the same
// lock before evicting, so f is assigned by the time it compares entries.
func (c *Cache[V]) start(ctx context.Context, key string) *async.Future[V] {
	var f *async.Future[V]
	f = async.Async(context.WithoutCancel(ctx), key, func(ctx context.Context, key string) (V, error) {
		v, err := c.loader(ctx, key)
		if err != nil {
			c.opts.logger.Warn("load failed",
				logger.Component("viewcache"),
				slog.String("key", key),
				slog.Bool("cached", c.opts.cacheFailures),
				logger.Error(err),
			)
			if !c.opts.cacheFailures {
				c.mu.Lock()
				if c.entries[key] == f {
					delete(c.entries, key)
				}
				c.mu.Unlock()
			}
		}
		return v, err
	})
	return f
}

// Preload loads keys concurrently and returns the first error.
func (c *Cache[V]) Preload(ctx context.Context, keys ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		g.Go(func() error {
			_, err := c.Load(ctx, key)
			return err
		})
	}
	return g.Wait()
}

// Len reports the number of cached or in-flight entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Forget drops key so the next Load starts over.
func (c *Cache[V]) Forget(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
