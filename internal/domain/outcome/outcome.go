// Package outcome resolves a finished match into a result and a leaderboard.
package outcome

import (
	"slices"

	"github.com/okian/courtside/internal/domain/match"
)

// LeaderboardSize caps the number of leaderboard entries.
const LeaderboardSize = 6

// Result classifies a finished match.
type Result int

// Match results.
const (
	Tie Result = iota
	WinA
	WinB
)

func (r Result) String() string {
	switch r {
	case WinA:
		return "win_a"
	case WinB:
		return "win_b"
	default:
		return "tie"
	}
}

// Entry is one leaderboard row.
type Entry struct {
	Name   string
	Team   string
	Side   match.Side
	Points int
}

// Outcome is the resolved result of a match. WinnerScore and LoserScore are
// zero on a tie.
type Outcome struct {
	Result      Result
	WinnerScore int
	LoserScore  int
	Leaderboard []Entry
}

// IsTie reports whether neither side won.
func (o Outcome) IsTie() bool {
	return o.Result == Tie
}

// Winner returns the winning side; ok is false on a tie.
func (o Outcome) Winner() (side match.Side, ok bool) {
	switch o.Result {
	case WinA:
		return match.SideA, true
	case WinB:
		return match.SideB, true
	}
	return 0, false
}

// Resolve classifies the match by exact comparison of the two totals and
// ranks every contributor of both sides by points. Equal points keep side A
// before side B and contributor order within a side.
func Resolve(a, b match.SideSnapshot) Outcome {
	var o Outcome
	switch {
	case a.TotalScore > b.TotalScore:
		o = Outcome{Result: WinA, WinnerScore: a.TotalScore, LoserScore: b.TotalScore}
	case a.TotalScore < b.TotalScore:
		o = Outcome{Result: WinB, WinnerScore: b.TotalScore, LoserScore: a.TotalScore}
	default:
		o = Outcome{Result: Tie}
	}

	entries := make([]Entry, 0, len(a.Team.Contributors)+len(b.Team.Contributors))
	entries = appendEntries(entries, a, match.SideA)
	entries = appendEntries(entries, b, match.SideB)

	slices.SortStableFunc(entries, func(x, y Entry) int {
		return y.Points - x.Points
	})
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	o.Leaderboard = entries
	return o
}

// appendEntries adds one entry per named contributor of s. Contributors
// without per-contributor data score zero.
func appendEntries(dst []Entry, s match.SideSnapshot, side match.Side) []Entry {
	for i, name := range s.Team.Contributors {
		if name == "" {
			continue
		}
		dst = append(dst, Entry{
			Name:   name,
			Team:   s.Team.Name,
			Side:   side,
			Points: s.ScoreAt(i),
		})
	}
	return dst
}
