package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/spakit/app/passwordless"
	"github.com/dmitrymomot/spakit/core/callback"
	"github.com/dmitrymomot/spakit/core/httpclient"
	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/navigation"
	"github.com/dmitrymomot/spakit/core/router"
	"github.com/dmitrymomot/spakit/core/session"
	"github.com/dmitrymomot/spakit/core/storage"
	"github.com/dmitrymomot/spakit/core/view"
	"github.com/dmitrymomot/spakit/core/viewcache"
)

// App is the terminal client: one mounted view at a time, driven by
// typed commands.
type App struct {
	config Config
	logger *slog.Logger
	clock  clockwork.Clock
	in     io.Reader
	out    io.Writer
	http   *http.Client

	store     *session.Store
	api       *passwordless.Service
	callbacks *callback.Handler
	views     *viewcache.Cache[view.Factory]
	router    *router.Router
	history   *navigation.MemoryHistory
	nav       *navigation.Controller
	screen    *screen
	term      *terminal

	bg sync.WaitGroup
}

type AppOption func(*App) error

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		app.logger = l
		return nil
	}
}

func WithInput(r io.Reader) AppOption {
	return func(app *App) error {
		app.in = r
		return nil
	}
}

func WithOutput(w io.Writer) AppOption {
	return func(app *App) error {
		app.out = w
		return nil
	}
}

func WithHTTPClient(c *http.Client) AppOption {
	return func(app *App) error {
		app.http = c
		return nil
	}
}

func WithClock(c clockwork.Clock) AppOption {
	return func(app *App) error {
		app.clock = c
		return nil
	}
}

// NewApp wires the client over backend.
func NewApp(cfg Config, backend storage.Storage, opts ...AppOption) (*App, error) {
	if backend == nil {
		return nil, ErrNilStorage
	}

	app := &App{
		config: cfg,
		logger: logger.Discard(),
		clock:  clockwork.NewRealClock(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	app.screen = newScreen(app.out)
	app.term = newTerminal(app.in, app.screen)

	app.store = session.NewStore(backend,
		session.WithClock(app.clock),
		session.WithLogger(app.logger),
	)

	clientOpts := []httpclient.Option{
		httpclient.WithSession(app.store),
		httpclient.WithLogger(app.logger),
	}
	if app.http != nil {
		clientOpts = append(clientOpts, httpclient.WithHTTPClient(app.http))
	}
	client, err := httpclient.New(cfg.APIBaseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	if app.api, err = passwordless.New(client, cfg.Origin,
		passwordless.WithPrompter(app.term),
		passwordless.WithLogger(app.logger),
	); err != nil {
		return nil, err
	}

	if app.callbacks, err = callback.New(app.store, cfg.Origin,
		callback.WithPrompter(app.term),
		callback.WithLogger(app.logger),
	); err != nil {
		return nil, err
	}

	start, err := startURL(cfg)
	if err != nil {
		return nil, err
	}
	if app.history, err = navigation.NewMemoryHistory(start); err != nil {
		return nil, err
	}

	registry := app.registry()
	app.views = viewcache.New(func(_ context.Context, name string) (view.Factory, error) {
		f, ok := registry[name]
		if !ok {
			return nil, errors.Join(ErrUnknownView, errors.New(name))
		}
		return f, nil
	}, viewcache.WithLogger(app.logger))

	app.router = app.routes()
	app.nav = navigation.New(app.router, app.history, app.screen,
		navigation.WithLogger(app.logger),
		navigation.WithErrorHandler(app.renderFailed),
	)

	return app, nil
}

func startURL(cfg Config) (string, error) {
	origin, err := url.Parse(cfg.Origin)
	if err != nil {
		return "", errors.Join(callback.ErrInvalidOrigin, err)
	}
	ref, err := url.Parse(cfg.StartPath)
	if err != nil {
		return "", errors.Join(navigation.ErrInvalidURL, err)
	}
	return origin.ResolveReference(ref).String(), nil
}

func (app *App) routes() *router.Router {
	lazy := func(name string) view.Factory {
		return viewcache.Lazy(app.views, name)
	}

	r := router.New(
		router.WithNotFound(lazy("not-found")),
		router.WithLogger(app.logger),
	)
	r.Handle(router.Exact("/"), router.Guard(app.store, lazy("home"), lazy("access")))
	r.Handle(router.Exact("/callback"), lazy("callback"))
	r.Handle(router.Exact("/logout"), lazy("logout"))
	r.Handle(router.MustMatch(`/users/([a-zA-Z][a-zA-Z0-9_-]{0,17})`), router.Guard(app.store, lazy("profile"), lazy("access")))
	return r
}

func (app *App) renderFailed(ctx context.Context, path string, err error) {
	app.logger.WarnContext(ctx, "render failed",
		logger.Component("shell"),
		logger.Path(path),
		logger.Error(err),
	)
	app.screen.print("! could not open %s: %v", path, err)
}

// Store exposes the session store.
func (app *App) Store() *session.Store {
	return app.store
}

// Location returns the current URL.
func (app *App) Location() *url.URL {
	return app.history.Location()
}
