package router

import "errors"

var (
	ErrNilHandler = errors.New("router: nil handler")
	ErrNilPattern = errors.New("router: nil pattern")
	ErrNilView    = errors.New("router: handler returned no view")
)
