package shell

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/storage"
)

// Pinger is a storage backend that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WatchStorage pings backend every interval until ctx is done, logging when
// it becomes unreachable and when it recovers. Backends that are not a
// Pinger, or a non-positive interval, return nil at once.
func WatchStorage(ctx context.Context, backend storage.Storage, clock clockwork.Clock, interval time.Duration, log *slog.Logger) error {
	p, ok := backend.(Pinger)
	if !ok || interval <= 0 {
		return nil
	}
	if log == nil {
		log = logger.Discard()
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}

		err := p.Ping(ctx)
		switch {
		case err != nil && healthy:
			log.WarnContext(ctx, "storage unreachable", logger.Component("storage"), logger.Error(err))
		case err == nil && !healthy:
			log.InfoContext(ctx, "storage recovered", logger.Component("storage"))
		}
		healthy = err == nil
	}
}
