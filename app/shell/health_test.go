package shell_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spakit/app/shell"
	"github.com/dmitrymomot/spakit/core/storage"
)

type pingStorage struct {
	*storage.Memory
	pings atomic.Int32
	fail  atomic.Bool
}

func (s *pingStorage) Ping(context.Context) error {
	s.pings.Add(1)
	if s.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) count(s string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), s)
}

func TestWatchStorage(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClockAt(now)
	backend := &pingStorage{Memory: storage.NewMemory()}
	out := &lockedBuffer{}
	log := slog.New(slog.NewTextHandler(out, nil))

	done := make(chan error, 1)
	go func() {
		done <- shell.WatchStorage(ctx, backend, clock, time.Minute, log)
	}()

	tick := func(wantPings int32) {
		t.Helper()
		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		clock.Advance(time.Minute)
		require.Eventually(t, func() bool { return backend.pings.Load() == wantPings }, time.Second, time.Millisecond)
	}

	tick(1)
	backend.fail.Store(true)
	tick(2)
	tick(3)
	backend.fail.Store(false)
	tick(4)

	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 1, out.count("storage unreachable"), "failure is logged once per outage")
	assert.Equal(t, 1, out.count("storage recovered"))
}

func TestWatchStorage_NotPingable(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(now)
	assert.NoError(t, shell.WatchStorage(context.Background(), storage.NewMemory(), clock, time.Minute, nil))
	assert.NoError(t, shell.WatchStorage(context.Background(), &pingStorage{Memory: storage.NewMemory()}, clock, 0, nil))
}
