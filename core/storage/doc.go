// Package storage provides durable key/value backends for client state, the
// Go counterpart of a browser's localStorage.
//
// Two backends ship here:
//
//   - Memory: process-local map, the default for tests and throwaway runs
//   - Local: one file per key under a root directory, written atomically
//
// A Redis backend lives in integration/storage/redis. All backends return
// ErrNotFound for absent keys so callers can tell absence from failure.
//
//	store, err := storage.NewLocal("/var/lib/spakit")
//	if err != nil {
//		return err
//	}
//	_ = store.Set(ctx, "auth", []byte(`{"token":"..."}`))
//	raw, err := store.Get(ctx, "auth")
//	if errors.Is(err, storage.ErrNotFound) {
//		// no session
//	}
//
// Keys are restricted to letters, digits, '.', '-' and '_' so that the local
// backend can never escape its root directory.
package storage
