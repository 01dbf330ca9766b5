package session

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// DefaultKey is the storage key the session is persisted under.
const DefaultKey = "auth"

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for expiry checks.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger for discarded records and storage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
