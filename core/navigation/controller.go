package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/router"
	"github.com/dmitrymomot/spakit/core/view"
	"github.com/dmitrymomot/spakit/pkg/async"
)

// Dispatcher resolves a path to a view. *router.Router implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, path string) (router.Outcome, error)
}

// MountPoint is the single container the active view lives in.
type MountPoint interface {
	Clear()
	Append(ctx context.Context, v *view.Handle) error
}

// ErrorHandler is called when a render fails. It runs outside the
// controller's lock and may navigate.
type ErrorHandler func(ctx context.Context, path string, err error)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets a custom logger for the controller.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithErrorHandler sets the handler for failed renders.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Controller) {
		if h != nil {
			c.onError = h
		}
	}
}

// Controller drives renders from history changes.
type Controller struct {
	dispatcher Dispatcher
	history    History
	mount      MountPoint
	logger     *slog.Logger
	onError    ErrorHandler

	mu      sync.Mutex
	seq     uint64
	state   State
	current *view.Handle

	wg sync.WaitGroup
}

// New creates an idle controller. It panics on nil collaborators.
func New(d Dispatcher, h History, m MountPoint, opts ...Option) *Controller {
	if d == nil {
		panic(ErrNilDispatcher)
	}
	if h == nil {
		panic(ErrNilHistory)
	}
	if m == nil {
		panic(ErrNilMountPoint)
	}

	c := &Controller{
		dispatcher: d,
		history:    h,
		mount:      m,
		logger:     logger.Discard(),
	}
	c.onError = c.logError
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start renders the current location.
func (c *Controller) Start(ctx context.Context) *async.ExecFuture {
	c.logger.InfoContext(ctx, "navigation started",
		logger.Component("navigation"),
		logger.URL(c.history.Location().String()),
	)
	return c.PopState(ctx, c.history.State())
}

// PopState renders the current location. Only the latest call's view is
// mounted; the returned future reports ErrStale for superseded renders.
func (c *Controller) PopState(ctx context.Context, state any) *async.ExecFuture {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = Loading
	c.mu.Unlock()

	path := c.history.Location().EscapedPath()
	id := uuid.NewString()

	c.logger.DebugContext(ctx, "popstate",
		logger.Component("navigation"),
		logger.NavigationID(id),
		logger.Sequence(seq),
		logger.Path(path),
		slog.Any("state", state),
	)

	c.wg.Add(1)
	return async.Exec(context.WithoutCancel(ctx), seq, func(ctx context.Context, seq uint64) error {
		defer c.wg.Done()
		return c.render(ctx, seq, id, path)
	})
}

func (c *Controller) render(ctx context.Context, seq uint64, id, path string) error {
	out, err := c.dispatcher.Dispatch(ctx, path)
	if err == nil && out.View == nil {
		err = fmt.Errorf("%w: %s", ErrNotFound, out.Path)
	}

	attrs := []any{
		logger.Component("navigation"),
		logger.NavigationID(id),
		logger.Sequence(seq),
		logger.Path(path),
	}

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return c.discard(ctx, out.View, attrs)
	}
	if err != nil {
		c.settleLocked()
		c.mu.Unlock()
		if out.View != nil {
			out.View.Disconnect()
		}
		c.onError(ctx, path, err)
		return err
	}
	prev := c.current
	c.current = nil
	c.mu.Unlock()

	// Hooks run unlocked so a disconnecting view may navigate.
	if prev != nil {
		prev.Disconnect()
	}

	c.mu.Lock()
	if seq != c.seq {
		if c.current == nil {
			c.mount.Clear()
		}
		c.mu.Unlock()
		return c.discard(ctx, out.View, attrs)
	}
	c.mount.Clear()
	if err := c.mount.Append(ctx, out.View); err != nil {
		c.settleLocked()
		c.mu.Unlock()
		out.View.Disconnect()
		c.onError(ctx, path, err)
		return err
	}
	c.current = out.View
	c.state = Mounted
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "view mounted", append(attrs, logger.View(out.View.Name()))...)
	return nil
}

// discard drops the view of a superseded render.
func (c *Controller) discard(ctx context.Context, v *view.Handle, attrs []any) error {
	if v != nil {
		v.Disconnect()
	}
	c.logger.DebugContext(ctx, "render discarded", attrs...)
	return ErrStale
}

// settleLocked leaves Loading after a failed render: the previous view, if
// any, stays mounted.
func (c *Controller) settleLocked() {
	if c.current != nil {
		c.state = Mounted
	} else {
		c.state = Idle
	}
}

// HandleClick intercepts same-origin link clicks. It reports whether the
// event was taken over.
func (c *Controller) HandleClick(ctx context.Context, ev *ClickEvent) bool {
	if ev == nil || ev.DefaultPrevented() || ev.hasModifier() || ev.Button != 0 {
		return false
	}

	anchor := closestAnchor(ev.Target)
	if anchor == nil {
		return false
	}
	href, target := anchor.Link()
	if target != "" && target != "_self" {
		return false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return false
	}
	current := c.history.Location()
	dest := current.ResolveReference(ref)
	if !sameOrigin(current, dest) {
		return false
	}

	ev.PreventDefault()
	ev.StopImmediatePropagation()

	state := c.history.State()
	if err := c.history.PushState(state, dest.String()); err != nil {
		c.onError(ctx, dest.EscapedPath(), err)
		return true
	}
	c.PopState(ctx, state)
	return true
}

// Navigate pushes href and renders it.
func (c *Controller) Navigate(ctx context.Context, href string) (*async.ExecFuture, error) {
	state := c.history.State()
	if err := c.history.PushState(state, href); err != nil {
		return nil, err
	}
	return c.PopState(ctx, state), nil
}

// Redirect replaces the current entry with href and renders it.
func (c *Controller) Redirect(ctx context.Context, href string) (*async.ExecFuture, error) {
	state := c.history.State()
	if err := c.history.ReplaceState(state, href); err != nil {
		return nil, err
	}
	return c.PopState(ctx, state), nil
}

// Wait blocks until every started render has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the mounted view, or nil.
func (c *Controller) Current() *view.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) logError(ctx context.Context, path string, err error) {
	level := slog.LevelError
	if errors.Is(err, ErrNotFound) {
		level = slog.LevelWarn
	}
	c.logger.Log(ctx, level, "render failed",
		logger.Component("navigation"),
		logger.Path(path),
		logger.Error(err),
	)
}
