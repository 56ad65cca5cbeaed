package simulate

import (
	"fmt"

	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/outcome"
	"github.com/okian/courtside/internal/domain/roster"
	"github.com/okian/courtside/internal/domain/types"
)

// Tally is the local record of what a match should look like.
type Tally struct {
	sides [2]match.SideSnapshot
}

// NewTally starts an empty tally for the two teams.
func NewTally(teamA types.Team, teamB types.Team) *Tally {
	t := &Tally{}
	for i, team := range []types.Team{teamA, teamB} {
		t.sides[i] = match.SideSnapshot{
			TeamIndex: team.Index,
			Team:      roster.Team{ID: team.ID, Name: team.Name, Contributors: team.Contributors},
			Scores:    make([]int, len(team.Contributors)),
		}
	}
	return t
}

// Add records an accepted event.
func (t *Tally) Add(side match.Side, contributor, points int) {
	s := &t.sides[side]
	s.Scores[contributor] += points
	s.TotalScore += points
}

// Check compares the server's view of a match against the tally.
func (t *Tally) Check(m types.Match) error {
	for _, got := range []types.Side{m.A, m.B} {
		side, err := match.ParseSide(got.Side)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMismatch, err)
		}
		want := t.sides[side]
		if got.Total != want.TotalScore {
			return fmt.Errorf("%w: side %s total %d, want %d", ErrMismatch, side, got.Total, want.TotalScore)
		}
		if len(got.Contributors) != len(want.Scores) {
			return fmt.Errorf("%w: side %s has %d contributors, want %d", ErrMismatch, side, len(got.Contributors), len(want.Scores))
		}
		for i, c := range got.Contributors {
			if c.Points != want.Scores[i] {
				return fmt.Errorf("%w: side %s contributor %d (%s) has %d, want %d",
					ErrMismatch, side, i, c.Name, c.Points, want.Scores[i])
			}
		}
	}
	return nil
}

// Expected resolves the tally the way the server should.
func (t *Tally) Expected() outcome.Outcome {
	return outcome.Resolve(t.sides[match.SideA], t.sides[match.SideB])
}

// CheckOutcome compares a finalized outcome against the tally.
func (t *Tally) CheckOutcome(got types.Outcome) error {
	want := t.Expected()
	switch {
	case got.Result != want.Result.String():
		return fmt.Errorf("%w: result %s, want %s", ErrMismatch, got.Result, want.Result)
	case got.WinnerScore != want.WinnerScore || got.LoserScore != want.LoserScore:
		return fmt.Errorf("%w: score %d-%d, want %d-%d", ErrMismatch, got.WinnerScore, got.LoserScore, want.WinnerScore, want.LoserScore)
	case len(got.Leaderboard) != len(want.Leaderboard):
		return fmt.Errorf("%w: leaderboard has %d entries, want %d", ErrMismatch, len(got.Leaderboard), len(want.Leaderboard))
	}
	for i, e := range got.Leaderboard {
		w := want.Leaderboard[i]
		if e.Name != w.Name || e.Team != w.Team || e.Side != w.Side.String() || e.Points != w.Points {
			return fmt.Errorf("%w: leaderboard #%d is %s/%s %d, want %s/%s %d",
				ErrMismatch, i+1, e.Team, e.Name, e.Points, w.Team, w.Name, w.Points)
		}
	}
	return nil
}
