package httpclient

import "errors"

var (
	// ErrInvalidBaseURL is returned when the base URL is not absolute.
	ErrInvalidBaseURL = errors.New("httpclient: base URL must be absolute")
	// ErrEncodePayload is returned when a payload cannot be encoded as JSON.
	ErrEncodePayload = errors.New("httpclient: failed to encode payload")
	// ErrBuildRequest is returned when the request cannot be constructed.
	ErrBuildRequest = errors.New("httpclient: failed to build request")
)
