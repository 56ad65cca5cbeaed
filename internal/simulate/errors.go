package simulate

import "errors"

// Sentinel errors returned by Run.
var (
	ErrInvalidConfig = errors.New("invalid simulation config")
	ErrUnhealthy     = errors.New("service unhealthy")
	ErrUnexpected    = errors.New("unexpected response")
	ErrMismatch      = errors.New("server state does not match local tally")
)
