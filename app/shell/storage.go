package shell

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/spakit/core/storage"
	"github.com/dmitrymomot/spakit/integration/storage/redis"
)

// OpenStorage builds the storage backend cfg selects. The returned close
// function releases it and is never nil.
func OpenStorage(ctx context.Context, cfg Config) (storage.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case DriverMemory:
		return storage.NewMemory(), noop, nil
	case DriverFile, "":
		s, err := storage.NewLocal(cfg.StoragePath)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case DriverRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return redis.NewStorage(client, cfg.Redis.KeyPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
