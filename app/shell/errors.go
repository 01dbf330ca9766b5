package shell

import "errors"

var (
	ErrUnknownView   = errors.New("shell: unknown view")
	ErrUnknownDriver = errors.New("shell: unknown storage driver")
	ErrNilStorage    = errors.New("shell: nil storage")
)
