// Package redis keeps client records in Redis, for hosts that share one
// session between several processes or want it to survive a wiped disk.
//
// Connect parses the URL, then pings with retries until Redis answers or the
// connect timeout runs out. Storage adapts the client to storage.Storage:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		KeyPrefix:     "spakit:",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.NewStore(redis.NewStorage(client, cfg.KeyPrefix))
//
// Both redis:// and rediss:// URLs are accepted. Healthcheck returns a ping
// function suitable for readiness reporting.
//
// Errors:
//
//   - ErrFailedToParseRedisConnString: the connection URL is malformed
//   - ErrRedisNotReady: Redis did not answer within the connect timeout
//   - ErrEmptyConnectionURL: no connection URL was provided
//   - ErrHealthcheckFailed: the health check ping failed
package redis
