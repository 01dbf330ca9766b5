package session

import (
	"encoding/json"
	"errors"
	"time"
)

// User is the identity attached to a session.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Session is the persisted authentication state.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Validate checks that every field is present and the expiry is strictly after now.
func (s Session) Validate(now time.Time) error {
	switch {
	case s.Token == "":
		return ErrMissingToken
	case s.ExpiresAt.IsZero():
		return ErrMissingExpiry
	case s.User.ID == "" || s.User.Email == "" || s.User.Username == "":
		return ErrIncompleteUser
	case !s.ExpiresAt.After(now):
		return ErrExpired
	}
	return nil
}

// IsActive reports whether the session is valid at now.
func (s Session) IsActive(now time.Time) bool {
	return s.Validate(now) == nil
}

// TTL returns the time left until expiry, or zero once expired.
func (s Session) TTL(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// record mirrors the persisted JSON with pointers so that absent fields
// are distinguishable from empty ones.
type record struct {
	Token     *string `json:"token"`
	ExpiresAt *string `json:"expiresAt"`
	User      *struct {
		ID       *string `json:"id"`
		Email    *string `json:"email"`
		Username *string `json:"username"`
	} `json:"user"`
}

// Decode parses a persisted record and validates it at now.
func Decode(raw []byte, now time.Time) (Session, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Session{}, errors.Join(ErrMalformed, err)
	}
	if rec.Token == nil {
		return Session{}, ErrMissingToken
	}
	if rec.ExpiresAt == nil || *rec.ExpiresAt == "" {
		return Session{}, ErrMissingExpiry
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, *rec.ExpiresAt)
	if err != nil {
		return Session{}, errors.Join(ErrInvalidExpiry, err)
	}
	if rec.User == nil || rec.User.ID == nil || rec.User.Email == nil || rec.User.Username == nil {
		return Session{}, ErrIncompleteUser
	}

	s := Session{
		Token:     *rec.Token,
		ExpiresAt: expiresAt,
		User: User{
			ID:       *rec.User.ID,
			Email:    *rec.User.Email,
			Username: *rec.User.Username,
		},
	}
	if err := s.Validate(now); err != nil {
		return Session{}, err
	}
	return s, nil
}
