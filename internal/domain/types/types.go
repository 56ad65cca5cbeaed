// Package types contains the read shapes returned to API clients.
package types

import (
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/outcome"
	"github.com/okian/courtside/internal/domain/roster"
)

// Team is a roster entry with its selection index.
type Team struct {
	Index        int      `json:"index"`
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	Logo         string   `json:"logo"`
	Contributors []string `json:"contributors"`
}

// ContributorScore is one contributor's running points.
type ContributorScore struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Side is one side's running score.
type Side struct {
	Side         string             `json:"side"`
	TeamIndex    int                `json:"team_index"`
	Team         string             `json:"team"`
	Total        int                `json:"total"`
	Contributors []ContributorScore `json:"contributors"`
}

// Match is the current state of an active match.
type Match struct {
	ID string `json:"id"`
	A  Side   `json:"a"`
	B  Side   `json:"b"`
}

// Entry represents a leaderboard entry.
type Entry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Side   string `json:"side"`
	Points int    `json:"points"`
}

// Outcome is a finalized match. Winner fields are empty on a tie.
type Outcome struct {
	MatchID     string  `json:"match_id"`
	Result      string  `json:"result"`
	Winner      string  `json:"winner,omitempty"`
	WinnerTeam  string  `json:"winner_team,omitempty"`
	WinnerScore int     `json:"winner_score"`
	LoserScore  int     `json:"loser_score"`
	Leaderboard []Entry `json:"leaderboard"`
}

// ScoreResult acknowledges a scoring request.
type ScoreResult struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	Match     Match  `json:"match"`
}

// FromTeam converts a roster team at index.
func FromTeam(index int, t roster.Team) Team {
	return Team{
		Index:        index,
		ID:           t.ID,
		Name:         t.Name,
		Color:        t.Color,
		Logo:         t.Logo,
		Contributors: append([]string{}, t.Contributors...),
	}
}

// FromSnapshot converts one side's snapshot.
func FromSnapshot(side match.Side, s match.SideSnapshot) Side {
	out := Side{
		Side:         side.String(),
		TeamIndex:    s.TeamIndex,
		Team:         s.Team.Name,
		Total:        s.TotalScore,
		Contributors: make([]ContributorScore, len(s.Team.Contributors)),
	}
	for i, name := range s.Team.Contributors {
		out.Contributors[i] = ContributorScore{Index: i, Name: name, Points: s.ScoreAt(i)}
	}
	return out
}

// FromMatch converts a pair of snapshots for match id.
func FromMatch(id string, a, b match.SideSnapshot) Match {
	return Match{
		ID: id,
		A:  FromSnapshot(match.SideA, a),
		B:  FromSnapshot(match.SideB, b),
	}
}

// FromOutcome converts a resolved outcome. teams names the team on each side.
func FromOutcome(id string, o outcome.Outcome, teams [2]string) Outcome {
	out := Outcome{
		MatchID:     id,
		Result:      o.Result.String(),
		WinnerScore: o.WinnerScore,
		LoserScore:  o.LoserScore,
		Leaderboard: make([]Entry, len(o.Leaderboard)),
	}
	if side, ok := o.Winner(); ok {
		out.Winner = side.String()
		out.WinnerTeam = teams[side]
	}
	for i, e := range o.Leaderboard {
		out.Leaderboard[i] = Entry{
			Rank:   i + 1,
			Name:   e.Name,
			Team:   e.Team,
			Side:   e.Side.String(),
			Points: e.Points,
		}
	}
	return out
}
