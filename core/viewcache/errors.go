package viewcache

import "errors"

var (
	ErrNilLoader  = errors.New("viewcache: nil loader")
	ErrLoadFailed = errors.New("viewcache: load failed")
)
