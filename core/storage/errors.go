package storage

import "errors"

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidKey is returned for empty keys or keys with forbidden characters.
	ErrInvalidKey = errors.New("storage: invalid key")
	// ErrInvalidRoot is returned when the local root is not a usable directory.
	ErrInvalidRoot = errors.New("storage: invalid root directory")
)
