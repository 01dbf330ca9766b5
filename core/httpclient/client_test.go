package httpclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spakit/core/httpclient"
	"github.com/dmitrymomot/spakit/core/response"
	"github.com/dmitrymomot/spakit/core/session"
	"github.com/dmitrymomot/spakit/core/storage"
)

func signedInStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(storage.NewMemory())
	require.NoError(t, store.Save(context.Background(), session.Session{
		Token:     "secret",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      session.User{ID: "1", Email: "a@b.com", Username: "ann"},
	}))
	return store
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := httpclient.New("/relative")
	assert.ErrorIs(t, err, httpclient.ErrInvalidBaseURL)

	_, err = httpclient.New("http://localhost:8080")
	assert.NoError(t, err)
}

func TestClient_BearerToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"1","username":"ann"}`)
	}))
	defer srv.Close()

	t.Run("attached while signed in", func(t *testing.T) {
		c, err := httpclient.New(srv.URL, httpclient.WithSession(signedInStore(t)))
		require.NoError(t, err)

		res, err := c.Get(ctx, "/api/auth-user", nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", gotAuth)
		assert.Equal(t, map[string]any{"id": "1", "username": "ann"}, res.Body)
	})

	t.Run("omitted without a session", func(t *testing.T) {
		c, err := httpclient.New(srv.URL, httpclient.WithSession(session.NewStore(storage.NewMemory())))
		require.NoError(t, err)

		_, err = c.Get(ctx, "/api/auth-user", nil)
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})

	t.Run("explicit header wins", func(t *testing.T) {
		c, err := httpclient.New(srv.URL, httpclient.WithSession(signedInStore(t)))
		require.NoError(t, err)

		_, err = c.Get(ctx, "/api/auth-user", http.Header{"authorization": []string{"Bearer other"}})
		require.NoError(t, err)
		assert.Equal(t, "Bearer other", gotAuth)
	})
}

func TestClient_PostJSON(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var got map[string]string
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/send-magic-link", r.URL.Path)
		assert.Equal(t, "spakit", r.Header.Get("X-Client"))
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := httpclient.New(srv.URL, httpclient.WithHeader("X-Client", "spakit"))
	require.NoError(t, err)

	res, err := c.Post(ctx, "/api/send-magic-link", map[string]string{"email": "a@b.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.Equal(t, map[string]string{"email": "a@b.com"}, got)
}

func TestClient_PostReader(t *testing.T) {
	t.Parallel()

	var body, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		contentType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	c, err := httpclient.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/upload", strings.NewReader("raw bytes"), http.Header{"Content-Type": []string{"text/plain"}})
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", body)
	assert.Equal(t, "text/plain", contentType)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := signedInStore(t)
	c, err := httpclient.New(srv.URL, httpclient.WithSession(store))
	require.NoError(t, err)

	_, err = c.Get(ctx, "/api/auth-user", nil)
	require.Error(t, err)
	assert.True(t, response.IsUnauthorized(err))
	assert.Equal(t, "unauthenticated", err.Error())
	assert.False(t, store.IsAuthenticated(ctx))
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := httpclient.New(url)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/", nil)
	assert.ErrorIs(t, err, response.ErrTransport)
	assert.EqualError(t, err, "network request failed")
}

func TestClient_EncodeFailure(t *testing.T) {
	t.Parallel()

	c, err := httpclient.New("http://localhost")
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/", map[string]any{"ch": make(chan int)}, nil)
	assert.ErrorIs(t, err, httpclient.ErrEncodePayload)
}
