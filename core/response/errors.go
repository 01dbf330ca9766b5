package response

import "errors"

var (
	// ErrTransport marks failures where no HTTP response was received.
	ErrTransport = errors.New("response: transport failure")
	// ErrReadBody is returned when the response body cannot be read.
	ErrReadBody = errors.New("response: failed to read body")
	// ErrNilResponse is returned when Normalize receives a nil response.
	ErrNilResponse = errors.New("response: nil response")
	// ErrEmptyBody is returned by Decode when there is nothing to decode.
	ErrEmptyBody = errors.New("response: empty body")
)
