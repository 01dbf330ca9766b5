package callback

import "errors"

var (
	ErrNilStore        = errors.New("callback: nil session store")
	ErrInvalidOrigin   = errors.New("callback: invalid app origin")
	ErrInvalidExpiry   = errors.New("callback: invalid expires_at")
	ErrInvalidRetry    = errors.New("callback: invalid retry_uri")
	ErrSessionNotSaved = errors.New("callback: session not saved")
)
