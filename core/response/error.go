package response

import (
	"errors"
	"net/http"
)

// Error is a failed, normalized HTTP response.
type Error struct {
	StatusCode int
	StatusText string
	Header     http.Header
	// Body is the decoded JSON value or trimmed text; the status text when the body was empty.
	Body    any
	Message string

	raw   []byte
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport or read failure, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Raw returns the undecoded body bytes.
func (e *Error) Raw() []byte {
	return e.raw
}

// FieldErrors extracts a field-name to message map from validation failures.
// Both {"email":"taken"} and {"errors":{"email":"taken"}} bodies are understood.
// Returns nil when the body carries no field detail.
func (e *Error) FieldErrors() map[string]string {
	obj, ok := e.Body.(map[string]any)
	if !ok {
		return nil
	}
	if nested, ok := obj["errors"].(map[string]any); ok {
		obj = nested
	}

	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		if k == "message" || k == "error" {
			continue
		}
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// TransportError wraps a failure that produced no response at all.
func TransportError(err error) *Error {
	return &Error{
		Message: "network request failed",
		cause:   errors.Join(ErrTransport, err),
	}
}

// StatusCode returns the HTTP status of err, or 0 when err is not an *Error.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsValidation reports whether err is a 4xx failure carrying field errors.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500 && e.FieldErrors() != nil
}
