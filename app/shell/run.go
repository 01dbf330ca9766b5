package shell

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/spakit/app/passwordless"
	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/navigation"
)

const help = `commands:
  open <path>            navigate to path (fragments allowed, e.g. /callback#token=...)
  click <href> [flags]   click a link; flags: --ctrl --meta --shift --alt --button=N --target=NAME
  back | forward         walk the history
  login <email>          request a magic link
  logout                 sign out
  whoami                 show the stored session
  where                  show the current location
  quit                   exit`

// Run renders the start location and executes commands until input ends,
// quit is typed or ctx is done.
func (app *App) Run(ctx context.Context) error {
	defer app.shutdown()

	if err := app.views.Preload(ctx, "access", "home", "not-found"); err != nil {
		return err
	}

	app.logger.InfoContext(ctx, "shell started",
		logger.Component("shell"),
		logger.URL(app.history.Location().String()),
	)
	app.nav.Start(ctx)
	app.nav.Wait()
	app.screen.print("\ntype help for commands")

	for {
		line, ok := app.term.readLine(ctx)
		if !ok {
			return ctx.Err()
		}
		if line == "" {
			continue
		}

		quit := app.execute(ctx, line)
		app.nav.Wait()
		if quit {
			return nil
		}
	}
}

func (app *App) shutdown() {
	app.term.close()
	app.nav.Wait()
	if current := app.nav.Current(); current != nil {
		current.Disconnect()
	}
	app.bg.Wait()
}

func (app *App) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "open":
		if len(args) != 1 {
			app.screen.print("usage: open <path>")
			return false
		}
		if _, err := app.nav.Navigate(ctx, args[0]); err != nil {
			app.screen.print("! %v", err)
		}
	case "click":
		app.click(ctx, args)
	case "back":
		if !app.history.Back() {
			app.screen.print("no previous page")
			return false
		}
		app.nav.PopState(ctx, app.history.State())
	case "forward":
		if !app.history.Forward() {
			app.screen.print("no next page")
			return false
		}
		app.nav.PopState(ctx, app.history.State())
	case "login":
		if len(args) != 1 {
			app.screen.print("usage: login <email>")
			return false
		}
		app.login(ctx, args[0])
	case "logout":
		if _, err := app.nav.Navigate(ctx, "/logout"); err != nil {
			app.screen.print("! %v", err)
		}
	case "whoami":
		s := app.store.Read(ctx)
		if s == nil {
			app.screen.print("not signed in")
			return false
		}
		app.screen.print("%s <%s>, session expires in %s",
			s.User.Username, s.User.Email, s.TTL(app.clock.Now()).Round(time.Second))
	case "where":
		app.screen.print("%s", app.history.Location())
	case "help":
		app.screen.print("%s", help)
	case "quit", "exit":
		return true
	default:
		app.screen.print("unknown command %q, type help", cmd)
	}
	return false
}

func (app *App) click(ctx context.Context, args []string) {
	if len(args) == 0 {
		app.screen.print("usage: click <href> [flags]")
		return
	}

	anchor := &navigation.AnchorElement{Href: args[0]}
	ev := &navigation.ClickEvent{Target: &navigation.Element{Tag: "span", Parent: anchor}}
	for _, flag := range args[1:] {
		name, value, _ := strings.Cut(strings.TrimPrefix(flag, "--"), "=")
		switch name {
		case "ctrl":
			ev.CtrlKey = true
		case "meta":
			ev.MetaKey = true
		case "shift":
			ev.ShiftKey = true
		case "alt":
			ev.AltKey = true
		case "button":
			n, err := strconv.Atoi(value)
			if err != nil {
				app.screen.print("! invalid button %q", value)
				return
			}
			ev.Button = n
		case "target":
			anchor.Target = value
		default:
			app.screen.print("! unknown flag %q", flag)
			return
		}
	}

	if !app.nav.HandleClick(ctx, ev) {
		app.screen.print("left to the browser: %s", args[0])
	}
}

func (app *App) login(ctx context.Context, email string) {
	res, err := app.api.Access(ctx, email)

	var fe *passwordless.FieldError
	switch {
	case errors.As(err, &fe):
		app.screen.print("! %s: %s", fe.Field, fe.Message)
	case err != nil:
		app.screen.print("! %v", err)
	case res == passwordless.LinkSent:
		app.screen.print("Magic link sent. Go check your inbox to login.")
	}
}
