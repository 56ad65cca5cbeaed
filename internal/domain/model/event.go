// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/okian/courtside/internal/domain/match"
)

// ScoringEvent is one validated request to credit points to a contributor.
type ScoringEvent struct {
	EventID     string     // optional idempotency key, unique per match
	MatchID     string     // target match
	Side        match.Side // scoring side
	Contributor int        // contributor index on that side's team
	Points      int        // 2 or 3
	TS          time.Time  // when the event was received
}

// DedupeKey scopes the event id to its match. It is empty when the event
// carries no id.
func (e ScoringEvent) DedupeKey() string {
	if e.EventID == "" {
		return ""
	}
	return e.MatchID + "/" + e.EventID
}
