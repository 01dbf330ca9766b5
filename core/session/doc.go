// Package session persists and validates the client's authentication state.
//
// A Session is the token, its expiry instant and the identity of the signed-in
// user. Store keeps exactly one session under a storage key (default "auth")
// in any storage.Storage backend and is the single source of truth for
// "is the user signed in": IsAuthenticated is defined as Read() != nil and no
// boolean is cached anywhere.
//
// # Reading never fails
//
// Read returns nil instead of an error for every kind of bad state: a missing
// entry, invalid JSON, a missing token or expiry, an unparseable expiry, an
// expiry at or before the current instant, and a missing or incomplete user.
// Storage failures are logged and also read as "no session". Navigation code
// can therefore call Read on every route evaluation without error handling.
//
// # Expiry
//
// A session is active only while its expiry is strictly after the clock's
// current instant; a session expiring exactly "now" is already expired. The
// clock is a clockwork.Clock so tests can move time deterministically:
//
//	clock := clockwork.NewFakeClock()
//	store := session.NewStore(storage.NewMemory(), session.WithClock(clock))
//	_ = store.Save(ctx, sess)
//	clock.Advance(time.Hour)
//	store.IsAuthenticated(ctx) // re-evaluated against the new time
//
// # Persisted layout
//
//	{"token":"…","expiresAt":"2030-01-01T00:00:00Z","user":{"id":"…","email":"…","username":"…"}}
package session
