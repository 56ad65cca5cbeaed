package match

import (
	"errors"

	"github.com/okian/courtside/internal/domain/roster"
)

// Sentinel kinds for match errors.
var (
	// ErrOutOfRange is shared with the roster so callers can test one kind.
	ErrOutOfRange        = roster.ErrOutOfRange
	ErrInvalidScoreValue = errors.New("invalid score value")
	ErrInvalidSide       = errors.New("invalid side")
)
