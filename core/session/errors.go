package session

import "errors"

var (
	// ErrMissingToken is returned when a session has no token.
	ErrMissingToken = errors.New("session: missing token")
	// ErrMissingExpiry is returned when a session has no expiry instant.
	ErrMissingExpiry = errors.New("session: missing expiry")
	// ErrInvalidExpiry is returned when the expiry cannot be parsed as RFC 3339.
	ErrInvalidExpiry = errors.New("session: invalid expiry")
	// ErrExpired is returned when the expiry is not strictly in the future.
	ErrExpired = errors.New("session: expired")
	// ErrIncompleteUser is returned when any user identity field is missing or empty.
	ErrIncompleteUser = errors.New("session: incomplete user")
	// ErrMalformed is returned when the persisted record is not a JSON object of the expected shape.
	ErrMalformed = errors.New("session: malformed record")
	// ErrSaveSession is returned when writing the session to storage fails.
	ErrSaveSession = errors.New("session: failed to save")
	// ErrClearSession is returned when removing the session from storage fails.
	ErrClearSession = errors.New("session: failed to clear")
)
