package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/spakit/core/storage"
)

// Storage implements storage.Storage on top of a Redis client.
type Storage struct {
	client redis.UniversalClient
	prefix string
}

var _ storage.Storage = (*Storage)(nil)

// NewStorage stores every key under prefix.
func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	return &Storage{client: client, prefix: prefix}
}

// Get returns storage.ErrNotFound for missing keys.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Set writes value without expiry. Sessions carry their own expiry.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	return s.client.Del(ctx, s.prefix+key).Err()
}

// Ping reports whether the server answers.
func (s *Storage) Ping(ctx context.Context) error {
	return Healthcheck(s.client)(ctx)
}
