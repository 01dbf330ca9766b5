package viewcache

import (
	"context"

	"github.com/dmitrymomot/spakit/core/view"
)

// Lazy returns a view factory that resolves the named factory through c on
// first use and delegates to it.
func Lazy(c *Cache[view.Factory], name string) view.Factory {
	return func(ctx context.Context, captures ...string) (*view.Handle, error) {
		factory, err := c.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		return factory(ctx, captures...)
	}
}
