// Package router maps a location path to the view that owns it.
//
// Routes are tried in registration order and the first match wins. A pattern
// is either an exact path or a regular expression that must match the whole
// decoded path (escaped reserved characters such as %2F stay encoded); its
// capture groups are handed to the view factory in order.
// When nothing matches, Dispatch reports a NotFound outcome and, if one is
// configured, renders the not-found view. No catch-all pattern is involved.
//
//	r := router.New(router.WithNotFound(notFoundView))
//	r.Handle(router.Exact("/"), router.Guard(sessions, homeView, accessView))
//	r.Handle(router.MustMatch(`/users/([^/]+)`), profileView)
//
//	out, err := r.Dispatch(ctx, "/users/ann")
//	// out.Status == router.Matched, out.Captures == []string{"ann"}
//
// Guard asks its Authenticator on every call, so a session that expires
// between navigations is noticed on the next one.
package router
