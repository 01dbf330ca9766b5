package view_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spakit/core/view"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestHandle_Render(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := view.New("home", text("<h1>Welcome</h1>"))
	require.NoError(t, h.Render(context.Background(), &buf))
	assert.Equal(t, "<h1>Welcome</h1>", buf.String())
	assert.Equal(t, "home", h.Name())

	buf.Reset()
	require.NoError(t, view.New("empty", nil).Render(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestHandle_DisconnectFiresOnce(t *testing.T) {
	t.Parallel()

	h := view.New("home", nil)
	var calls atomic.Int32
	h.OnDisconnect(func() { calls.Add(1) })
	h.OnDisconnect(func() { calls.Add(1) })

	assert.False(t, h.Disconnected())

	var wg sync.WaitGroup
	var fired atomic.Int32
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h.Disconnect() {
				fired.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, h.Disconnected())

	select {
	case <-h.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestHandle_LateHookRunsImmediately(t *testing.T) {
	t.Parallel()

	h := view.New("home", nil)
	h.Disconnect()

	ran := false
	h.OnDisconnect(func() { ran = true })
	assert.True(t, ran)
	h.OnDisconnect(nil)
}
