// Package view defines the unit the router produces and the navigation
// controller mounts.
//
// A Handle wraps a templ.Component together with a one-shot disconnect
// signal. The signal fires exactly once, right before the view is replaced,
// so the view can stop timers, cancel background requests and release
// listeners it registered while mounted:
//
//	func Home(ctx context.Context, _ ...string) (*view.Handle, error) {
//		h := view.New("home", homeComponent())
//		fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
//		h.OnDisconnect(cancel)
//		go refreshUser(fetchCtx)
//		return h, nil
//	}
//
// A Factory builds a Handle from the positional captures of the route that
// matched.
package view
