package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/spakit/core/logger"
	"github.com/dmitrymomot/spakit/core/response"
)

// Session supplies the bearer token and is cleared on 401 responses.
type Session interface {
	Token(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// Client is a JSON API client.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	session Session
	header  http.Header
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithSession enables bearer authentication and 401 session clearing.
func WithSession(s Session) Option {
	return func(c *Client) {
		c.session = s
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client resolving request paths against baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || !u.IsAbs() {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		header:  make(http.Header),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET request. Explicit headers override defaults, including Authorization.
func (c *Client) Get(ctx context.Context, path string, header http.Header) (*response.Response, error) {
	return c.send(ctx, http.MethodGet, path, nil, header)
}

// Post issues a POST request. An io.Reader payload is sent verbatim; nil sends
// no body; anything else is encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, payload any, header http.Header) (*response.Response, error) {
	return c.send(ctx, http.MethodPost, path, payload, header)
}

// Do sends a prepared request through the normalizer.
func (c *Client) Do(req *http.Request) (*response.Response, error) {
	ctx := req.Context()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "request failed",
			logger.Component("httpclient"),
			logger.Method(req.Method),
			logger.URL(req.URL.String()),
			logger.Error(err),
		)
		return nil, response.TransportError(err)
	}

	c.logger.DebugContext(ctx, "request completed",
		logger.Component("httpclient"),
		logger.Method(req.Method),
		logger.URL(req.URL.String()),
		logger.StatusCode(resp.StatusCode),
		logger.Elapsed(start),
	)

	return response.Normalize(resp,
		response.WithLogger(c.logger),
		response.WithUnauthorized(func() { c.clearSession(ctx) }),
	)
}

func (c *Client) send(ctx context.Context, method, path string, payload any, header http.Header) (*response.Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, errors.Join(ErrBuildRequest, err)
	}

	body, contentType, err := encode(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, errors.Join(ErrBuildRequest, err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != nil {
		if token, ok := c.session.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for k, vs := range c.header {
		req.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	return c.Do(req)
}

func (c *Client) clearSession(ctx context.Context) {
	if c.session == nil {
		return
	}
	if err := c.session.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to clear session after 401",
			logger.Component("httpclient"),
			logger.Error(err),
		)
		return
	}
	c.logger.InfoContext(ctx, "session cleared after 401", logger.Component("httpclient"))
}

func encode(payload any) (io.Reader, string, error) {
	switch p := payload.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return p, "application/octet-stream", nil
	default:
		b, err := json.Marshal(p)
		if err != nil {
			return nil, "", errors.Join(ErrEncodePayload, err)
		}
		return bytes.NewReader(b), "application/json; charset=utf-8", nil
	}
}
