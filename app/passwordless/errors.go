package passwordless

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrigin   = errors.New("passwordless: invalid app origin")
	ErrInvalidUsername = errors.New("passwordless: username must start with a letter and contain up to 18 letters, digits, '-' or '_'")
	ErrInvalidEmail    = errors.New("passwordless: invalid email")
	ErrNilClient       = errors.New("passwordless: nil client")
)

// FieldError is a server-side validation failure tied to one input.
type FieldError struct {
	Field   string
	Message string
	cause   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.cause
}
