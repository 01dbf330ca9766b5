package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/storage"
)

// Store reads and writes the single persisted session.
type Store struct {
	storage storage.Storage
	key     string
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewStore returns a Store over the given backend.
func NewStore(backend storage.Storage, opts ...Option) *Store {
	s := &Store{
		storage: backend,
		key:     DefaultKey,
		clock:   clockwork.NewRealClock(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save validates sess and persists it, replacing any previous session.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if err := sess.Validate(s.clock.Now()); err != nil {
		return err
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	if err := s.storage.Set(ctx, s.key, b); err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	s.logger.DebugContext(ctx, "session saved",
		logger.Component("session"),
		logger.UserID(sess.User.ID),
		logger.StorageKey(s.key),
	)
	return nil
}

// Read returns the active session or nil. It never fails: malformed,
// incomplete or expired records and storage errors all read as nil.
func (s *Store) Read(ctx context.Context) *Session {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WarnContext(ctx, "session storage unavailable",
				logger.Component("session"),
				logger.StorageKey(s.key),
				logger.Error(err),
			)
		}
		return nil
	}

	sess, err := Decode(raw, s.clock.Now())
	if err != nil {
		s.logger.DebugContext(ctx, "persisted session ignored",
			logger.Component("session"),
			logger.StorageKey(s.key),
			logger.Error(err),
		)
		return nil
	}
	return &sess
}

// Clear removes the persisted session.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return errors.Join(ErrClearSession, err)
	}
	s.logger.DebugContext(ctx, "session cleared",
		logger.Component("session"),
		logger.StorageKey(s.key),
	)
	return nil
}

// IsAuthenticated reports whether an active session exists right now.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.Read(ctx) != nil
}

// Token returns the bearer token of the active session.
func (s *Store) Token(ctx context.Context) (string, bool) {
	sess := s.Read(ctx)
	if sess == nil {
		return "", false
	}
	return sess.Token, true
}
