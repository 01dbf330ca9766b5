package view

import (
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
)

// Factory builds a view from route captures.
type Factory func(ctx context.Context, captures ...string) (*Handle, error)

// Handle is a renderable view with a one-shot disconnect signal.
type Handle struct {
	name      string
	component templ.Component

	once  sync.Once
	done  chan struct{}
	mu    sync.Mutex
	hooks []func()
}

// New wraps component under the given name. A nil component renders nothing.
func New(name string, component templ.Component) *Handle {
	if component == nil {
		component = templ.NopComponent
	}
	return &Handle{
		name:      name,
		component: component,
		done:      make(chan struct{}),
	}
}

// Name returns the view name used in logs.
func (h *Handle) Name() string {
	return h.name
}

// Render writes the view, so a Handle is itself a templ.Component.
func (h *Handle) Render(ctx context.Context, w io.Writer) error {
	return h.component.Render(ctx, w)
}

// OnDisconnect registers fn to run when the view is disconnected.
// Registering after disconnection runs fn immediately.
func (h *Handle) OnDisconnect(fn func()) {
	if fn == nil {
		return
	}

	h.mu.Lock()
	select {
	case <-h.done:
		h.mu.Unlock()
		fn()
		return
	default:
	}
	h.hooks = append(h.hooks, fn)
	h.mu.Unlock()
}

// Disconnect fires the disconnect signal. Only the first call has an effect;
// it reports whether this call was the one that fired.
func (h *Handle) Disconnect() bool {
	fired := false
	h.once.Do(func() {
		fired = true

		h.mu.Lock()
		hooks := h.hooks
		h.hooks = nil
		close(h.done)
		h.mu.Unlock()

		for _, fn := range hooks {
			fn()
		}
	})
	return fired
}

// Done is closed once the view has been disconnected.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Disconnected reports whether Disconnect has fired.
func (h *Handle) Disconnected() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
