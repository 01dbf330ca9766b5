package callback

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/session"
)

// Fragment keys.
const (
	KeyToken    = "token"
	KeyExpires  = "expires_at"
	KeyUserID   = "user.id"
	KeyEmail    = "user.email"
	KeyUsername = "user.username"
	KeyError    = "error"
	KeyRetryURI = "retry_uri"
)

// Home is where every non-retry outcome exits to.
const Home = "/"

// MsgUserNotFound is the error the auth server reports for an unknown email.
const MsgUserNotFound = "user not found"

// Prompter asks the user things. A false ok means the user dismissed it.
type Prompter interface {
	Alert(msg string)
	Confirm(msg string) bool
	Prompt(msg, def string) (string, bool)
}

// Saver persists a session. *session.Store implements it.
type Saver interface {
	Save(ctx context.Context, s session.Session) error
}

// Failure is an error reported by the auth server.
type Failure struct {
	Message  string
	RetryURI string
}

// Outcome tells the caller where to go next.
type Outcome struct {
	Redirect string
	// External is set when Redirect leaves the app and must replace the
	// whole location rather than go through history.
	External bool
	Session  *session.Session
	Failure  *Failure
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrompter enables the interactive retry flow.
func WithPrompter(p Prompter) Option {
	return func(h *Handler) {
		h.prompter = p
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Handler processes callback fragments.
type Handler struct {
	store    Saver
	origin   *url.URL
	prompter Prompter
	logger   *slog.Logger
}

// New creates a Handler. origin is the app origin retry URLs resolve against.
func New(store Saver, origin string, opts ...Option) (*Handler, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, errors.Join(ErrInvalidOrigin, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, ErrInvalidOrigin
	}

	h := &Handler{
		store:  store,
		origin: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle processes fragment, with or without the leading '#'.
// The returned error explains a failed save; the outcome is always usable.
func (h *Handler) Handle(ctx context.Context, fragment string) (Outcome, error) {
	data, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
	if err != nil {
		h.logger.DebugContext(ctx, "malformed callback fragment",
			logger.Component("callback"),
			logger.Error(err),
		)
	}

	if data.Has(KeyError) {
		return h.failure(ctx, Failure{
			Message:  data.Get(KeyError),
			RetryURI: data.Get(KeyRetryURI),
		}, data.Has(KeyRetryURI))
	}

	for _, k := range []string{KeyToken, KeyExpires, KeyUserID, KeyEmail, KeyUsername} {
		if !data.Has(k) {
			h.logger.InfoContext(ctx, "callback without session",
				logger.Component("callback"),
				slog.String("missing", k),
			)
			return Outcome{Redirect: Home}, nil
		}
	}

	return h.signIn(ctx, data)
}

func (h *Handler) signIn(ctx context.Context, data url.Values) (Outcome, error) {
	expiresAt, err := time.Parse(time.RFC3339Nano, data.Get(KeyExpires))
	if err != nil {
		return Outcome{Redirect: Home}, errors.Join(ErrSessionNotSaved, ErrInvalidExpiry, err)
	}

	s := session.Session{
		Token:     data.Get(KeyToken),
		ExpiresAt: expiresAt,
		User: session.User{
			ID:       data.Get(KeyUserID),
			Email:    data.Get(KeyEmail),
			Username: data.Get(KeyUsername),
		},
	}
	if err := h.store.Save(ctx, s); err != nil {
		h.logger.WarnContext(ctx, "session not saved",
			logger.Component("callback"),
			logger.Error(err),
		)
		return Outcome{Redirect: Home}, errors.Join(ErrSessionNotSaved, err)
	}

	h.logger.InfoContext(ctx, "signed in",
		logger.Component("callback"),
		logger.UserID(s.User.ID),
	)
	return Outcome{Redirect: Home, Session: &s}, nil
}

func (h *Handler) failure(ctx context.Context, f Failure, retryable bool) (Outcome, error) {
	out := Outcome{Redirect: Home, Failure: &f}

	h.logger.InfoContext(ctx, "callback failed",
		logger.Component("callback"),
		slog.String("message", f.Message),
		slog.Bool("retryable", retryable),
	)

	if h.prompter == nil {
		return out, nil
	}
	h.prompter.Alert(f.Message)

	if !retryable {
		return out, nil
	}
	if f.Message == MsgUserNotFound && !h.prompter.Confirm("Do you want to create a new account?") {
		return out, nil
	}

	username, ok := h.prompter.Prompt("Username", "")
	if !ok {
		return out, nil
	}

	ref, err := url.Parse(f.RetryURI)
	if err != nil {
		return out, errors.Join(ErrInvalidRetry, err)
	}
	retry := h.origin.ResolveReference(ref)
	q := retry.Query()
	q.Set("username", username)
	retry.RawQuery = q.Encode()

	out.Redirect = retry.String()
	out.External = true
	return out, nil
}
