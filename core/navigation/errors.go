package navigation

import "errors"

var (
	ErrNilDispatcher = errors.New("navigation: nil dispatcher")
	ErrNilHistory    = errors.New("navigation: nil history")
	ErrNilMountPoint = errors.New("navigation: nil mount point")
	ErrNotFound      = errors.New("navigation: no view for location")
	ErrCrossOrigin   = errors.New("navigation: cross-origin history entry")
	ErrInvalidURL    = errors.New("navigation: invalid url")
	ErrStale         = errors.New("navigation: render superseded")
)
