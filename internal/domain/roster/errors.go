package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrOutOfRange  = errors.New("index out of range")
	ErrEmptyRoster = errors.New("roster has no teams")
	ErrInvalidTeam = errors.New("invalid team")
)
