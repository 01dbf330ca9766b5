// Package viewcache memoizes asynchronous loads by key.
//
// Concurrent calls to Load for the same key share one in-flight future, so the
// underlying loader runs at most once per key. A failed load is evicted and
// retried by the next caller unless the cache was built WithCacheFailures.
//
//	views := viewcache.New(func(ctx context.Context, name string) (view.Factory, error) {
//		return registry.Lookup(name)
//	})
//	r.Handle(router.Exact("/"), viewcache.Lazy(views, "home"))
package viewcache
