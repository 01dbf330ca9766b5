package router

import (
	"context"

	"github.com/dmitrymomot/spakit/core/view"
)

// Authenticator reports whether a valid session exists right now.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context) bool

func (f AuthenticatorFunc) IsAuthenticated(ctx context.Context) bool {
	return f(ctx)
}

// Guard renders authenticated when auth reports a session and fallback
// otherwise. The check runs on every call.
func Guard(auth Authenticator, authenticated, fallback view.Factory) view.Factory {
	if auth == nil || authenticated == nil || fallback == nil {
		panic(ErrNilHandler)
	}
	return func(ctx context.Context, captures ...string) (*view.Handle, error) {
		if auth.IsAuthenticated(ctx) {
			return authenticated(ctx, captures...)
		}
		return fallback(ctx, captures...)
	}
}
