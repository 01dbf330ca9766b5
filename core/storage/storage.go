package storage

import (
	"context"
	"regexp"
)

// Storage is a durable key/value store for small client-side records.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var rxKey = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]{0,127}$`)

// ValidateKey reports ErrInvalidKey for keys that are empty, too long or
// contain characters outside [A-Za-z0-9._-]. Keys may not start with a dot.
func ValidateKey(key string) error {
	if !rxKey.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
