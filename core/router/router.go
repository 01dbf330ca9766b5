package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/view"
)

// Status is the kind of a dispatch outcome.
type Status int

const (
	Matched Status = iota
	NotFound
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case NotFound:
		return "not_found"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome describes what Dispatch did with a path.
type Outcome struct {
	Status   Status
	Path     string
	Pattern  Pattern
	Captures []string
	// View is nil for NotFound when no not-found view is configured.
	View *view.Handle
}

// Route is a registered pattern and its view factory.
type Route struct {
	Pattern Pattern
	Handler view.Factory
}

// Option configures a Router.
type Option func(*Router)

// WithNotFound sets the view rendered when no route matches.
func WithNotFound(h view.Factory) Option {
	return func(r *Router) {
		r.notFound = h
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// Router is an ordered list of routes.
type Router struct {
	mu       sync.RWMutex
	routes   []Route
	notFound view.Factory
	logger   *slog.Logger
}

// New creates an empty router.
func New(opts ...Option) *Router {
	r := &Router{logger: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle appends a route. It panics on a nil pattern or handler.
func (r *Router) Handle(p Pattern, h view.Factory) {
	if p == nil {
		panic(ErrNilPattern)
	}
	if h == nil {
		panic(ErrNilHandler)
	}

	r.mu.Lock()
	r.routes = append(r.routes, Route{Pattern: p, Handler: h})
	r.mu.Unlock()
}

// Routes returns a copy of the registered routes in order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Route(nil), r.routes...)
}

// Dispatch decodes path, keeping escaped reserved characters such as %2F,
// the first route that matches it.
// Handler errors are returned unchanged with the outcome filled in.
func (r *Router) Dispatch(ctx context.Context, path string) (Outcome, error) {
	decoded := decodePath(path)

	r.mu.RLock()
	routes := r.routes
	notFound := r.notFound
	r.mu.RUnlock()

	for _, route := range routes {
		captures, ok := route.Pattern.match(decoded)
		if !ok {
			continue
		}

		out := Outcome{
			Status:   Matched,
			Path:     decoded,
			Pattern:  route.Pattern,
			Captures: captures,
		}
		r.logger.DebugContext(ctx, "route matched",
			logger.Component("router"),
			logger.Path(decoded),
			logger.Pattern(route.Pattern.String()),
		)
		return r.render(ctx, out, route.Handler)
	}

	out := Outcome{Status: NotFound, Path: decoded}
	r.logger.DebugContext(ctx, "no route matched",
		logger.Component("router"),
		logger.Path(decoded),
	)
	if notFound == nil {
		return out, nil
	}
	return r.render(ctx, out, notFound)
}

func (r *Router) render(ctx context.Context, out Outcome, h view.Factory) (Outcome, error) {
	v, err := h(ctx, out.Captures...)
	if err != nil {
		return out, err
	}
	if v == nil {
		return out, ErrNilView
	}
	out.View = v
	return out, nil
}
