package shell

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/view"
)

func textf(format string, args ...any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	})
}

func (app *App) registry() map[string]view.Factory {
	return map[string]view.Factory{
		"access":    app.accessView,
		"home":      app.homeView,
		"profile":   app.profileView,
		"callback":  app.callbackView,
		"logout":    app.logoutView,
		"not-found": app.notFoundView,
	}
}

func (app *App) accessView(context.Context, ...string) (*view.Handle, error) {
	return view.New("access", textf("# Login\n\nType `login <email>` to get a magic link.")), nil
}

func (app *App) homeView(ctx context.Context, _ ...string) (*view.Handle, error) {
	s := app.store.Read(ctx)
	if s == nil {
		return app.accessView(ctx)
	}

	h := view.New("home", textf("# Welcome\n\nLogged-in as %s\n\n[profile](/users/%s) [logout](/logout)", s.User.Username, s.User.Username))

	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h.OnDisconnect(cancel)

	app.bg.Add(1)
	go func() {
		defer app.bg.Done()
		defer cancel()

		user, err := app.api.AuthUser(fetchCtx)
		if err != nil {
			app.logger.WarnContext(fetchCtx, "auth user refresh failed",
				logger.Component("shell"),
				logger.Error(err),
			)
			return
		}
		app.logger.DebugContext(fetchCtx, "auth user refreshed",
			logger.Component("shell"),
			logger.UserID(user.ID),
		)
	}()

	return h, nil
}

func (app *App) profileView(_ context.Context, captures ...string) (*view.Handle, error) {
	return view.New("profile", textf("# @%s\n\n[home](/)", captures[0])), nil
}

func (app *App) callbackView(ctx context.Context, _ ...string) (*view.Handle, error) {
	out, err := app.callbacks.Handle(ctx, app.history.Location().EscapedFragment())
	if err != nil {
		app.screen.print("! sign-in failed: %v", err)
	}

	target := out.Redirect
	if out.External {
		app.screen.print("Continue in your browser: %s", out.Redirect)
		target = "/"
	}
	if _, err := app.nav.Redirect(ctx, target); err != nil {
		return nil, err
	}
	return view.New("callback", textf("Signing in...")), nil
}

func (app *App) logoutView(ctx context.Context, _ ...string) (*view.Handle, error) {
	if err := app.store.Clear(ctx); err != nil {
		return nil, err
	}
	if _, err := app.nav.Redirect(ctx, "/"); err != nil {
		return nil, err
	}
	return view.New("logout", textf("Signing out...")), nil
}

func (app *App) notFoundView(context.Context, ...string) (*view.Handle, error) {
	return view.New("not-found", textf("# Not found\n\nNothing lives at %s. [home](/)", app.history.Location().Path)), nil
}
