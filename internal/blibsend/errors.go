package blibsend

import "errors"

var (
	ErrNotConfigured     = errors.New("blibsend is not configured")
	ErrSigninFailed      = errors.New("blibsend signin failed")
	ErrMissingToken      = errors.New("blibsend signin response has no token")
	ErrSendFailed        = errors.New("blibsend send failed")
	ErrNoRecipients      = errors.New("no recipients provided")
	ErrInvalidGroupID    = errors.New("invalid group id, expected an id ending in @g.us")
	ErrHealthcheckFailed = errors.New("blibsend healthcheck failed")
)
