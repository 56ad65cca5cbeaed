// Package match keeps the running score of a single two-sided match.
package match

import (
	"fmt"
	"strings"
	"sync"

	"github.com/okian/courtside/internal/domain/roster"
)

// Side identifies one of the two competing parties.
type Side int

// Sides of a match.
const (
	SideA Side = iota
	SideB
)

// String returns "A" or "B".
func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Valid reports whether s is SideA or SideB.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// ParseSide accepts "a"/"b" in any case.
func ParseSide(v string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	}
	return 0, fmt.Errorf("side %q: %w", v, ErrInvalidSide)
}

// Legal point values for a scoring event.
const (
	TwoPointer   = 2
	ThreePointer = 3
)

// ValidPoints reports whether points is a legal increment.
func ValidPoints(points int) bool {
	return points == TwoPointer || points == ThreePointer
}

// sideState is one side's counters. mu guards total and scores together.
type sideState struct {
	mu     sync.Mutex
	team   roster.Team
	index  int
	total  int
	scores []int
}

// State is the running score of one match. It is safe for concurrent use:
// events for the same side serialize, the two sides never contend.
type State struct {
	sides [2]*sideState
}

// New creates a zeroed match between the teams at indexA and indexB.
// Both indexes must be valid for r; they may be equal.
func New(r *roster.Roster, indexA, indexB int) (*State, error) {
	a, err := r.TeamAt(indexA)
	if err != nil {
		return nil, fmt.Errorf("side A: %w", err)
	}
	b, err := r.TeamAt(indexB)
	if err != nil {
		return nil, fmt.Errorf("side B: %w", err)
	}
	return &State{sides: [2]*sideState{newSide(a, indexA), newSide(b, indexB)}}, nil
}

func newSide(t roster.Team, index int) *sideState {
	return &sideState{
		team:   t,
		index:  index,
		scores: make([]int, t.ContributorCount()),
	}
}

// RecordScore credits points to the contributor at contributorIndex on side.
// On error the state is unchanged.
func (m *State) RecordScore(side Side, contributorIndex, points int) error {
	if !side.Valid() {
		return fmt.Errorf("side %d: %w", int(side), ErrInvalidSide)
	}
	if !ValidPoints(points) {
		return fmt.Errorf("%d points: %w", points, ErrInvalidScoreValue)
	}
	s := m.sides[side]
	if contributorIndex < 0 || contributorIndex >= len(s.scores) {
		return fmt.Errorf("side %s contributor %d of %d: %w", side, contributorIndex, len(s.scores), ErrOutOfRange)
	}

	s.mu.Lock()
	s.total += points
	s.scores[contributorIndex] += points
	s.mu.Unlock()
	return nil
}

// Snapshot returns consistent copies of both sides. Side A is locked before
// side B so concurrent snapshots cannot deadlock.
func (m *State) Snapshot() (SideSnapshot, SideSnapshot) {
	a, b := m.sides[SideA], m.sides[SideB]
	a.mu.Lock()
	defer a.mu.Unlock()
	b.mu.Lock()
	defer b.mu.Unlock()
	return a.snapshot(), b.snapshot()
}

// Team returns the team playing on side.
func (m *State) Team(side Side) (roster.Team, error) {
	if !side.Valid() {
		return roster.Team{}, fmt.Errorf("side %d: %w", int(side), ErrInvalidSide)
	}
	return m.sides[side].team.Clone(), nil
}

func (s *sideState) snapshot() SideSnapshot {
	return SideSnapshot{
		TeamIndex:  s.index,
		Team:       s.team.Clone(),
		TotalScore: s.total,
		Scores:     append([]int(nil), s.scores...),
	}
}
