package response

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/spakit/core/logger"
)

// Response is a successful, normalized HTTP response.
type Response struct {
	StatusCode int
	StatusText string
	Header     http.Header
	// Body is the decoded JSON value, the trimmed text, or nil for an empty body.
	Body any

	raw []byte
}

// Decode unmarshals the raw JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.raw) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(r.raw, v)
}

// Raw returns the undecoded body bytes.
func (r *Response) Raw() []byte {
	return r.raw
}

type options struct {
	onUnauthorized func()
	logger         *slog.Logger
}

// Option configures Normalize.
type Option func(*options)

// WithUnauthorized registers a hook that runs when the response is a 401.
func WithUnauthorized(fn func()) Option {
	return func(o *options) {
		o.onUnauthorized = fn
	}
}

// WithLogger sets the logger used for failed responses.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Normalize reads and closes resp.Body and returns either a *Response or an *Error.
// A nil body reads as empty. On a 401 the unauthorized hook runs whether or
// not the body could be read.
func Normalize(resp *http.Response, opts ...Option) (*Response, error) {
	if resp == nil {
		return nil, ErrNilResponse
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	if resp.StatusCode == http.StatusUnauthorized && o.onUnauthorized != nil {
		defer o.onUnauthorized()
	}

	ctx := context.Background()
	if resp.Request != nil {
		ctx = resp.Request.Context()
	}
	statusText := StatusText(resp)

	var raw []byte
	if resp.Body != nil {
		var err error
		if raw, err = io.ReadAll(resp.Body); err != nil {
			return nil, &Error{
				StatusCode: resp.StatusCode,
				StatusText: statusText,
				Header:     resp.Header,
				Message:    statusText,
				cause:      errors.Join(ErrReadBody, err),
			}
		}
	}
	body := decodeBody(raw)

	if isOK(resp.StatusCode) {
		return &Response{
			StatusCode: resp.StatusCode,
			StatusText: statusText,
			Header:     resp.Header,
			Body:       body,
			raw:        raw,
		}, nil
	}

	if body == nil {
		body = statusText
	}
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		StatusText: statusText,
		Header:     resp.Header,
		Body:       body,
		Message:    message(body, statusText),
		raw:        raw,
	}

	o.logger.DebugContext(ctx, "request failed",
		logger.Component("response"),
		logger.StatusCode(resp.StatusCode),
		slog.String("message", apiErr.Message),
	)

	return nil, apiErr
}

// StatusText returns the reason phrase reported by the transport, falling
// back to the standard text for the code.
func StatusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func isOK(code int) bool {
	return code >= 200 && code < 400
}

// decodeBody tries JSON first, then trimmed text. Empty bodies decode to nil.
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err == nil {
		return v
	}
	return string(trimmed)
}

// message prefers a text body, then a "message" or "error" string in a JSON
// object, then the status text.
func message(body any, statusText string) string {
	switch b := body.(type) {
	case string:
		if b != "" {
			return b
		}
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s, ok := b[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return statusText
}
