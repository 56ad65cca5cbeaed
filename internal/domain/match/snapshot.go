package match

import "github.com/okian/courtside/internal/domain/roster"

// SideSnapshot is an immutable copy of one side's score at a point in time.
//
// Scores is optional: nil means no per-contributor data is available, and a
// slice shorter than the team's contributor list leaves the remaining
// contributors without data. Readers treat missing entries as zero points.
type SideSnapshot struct {
	TeamIndex  int
	Team       roster.Team
	TotalScore int
	Scores     []int
}

// HasScores reports whether any per-contributor data is present.
func (s SideSnapshot) HasScores() bool {
	return s.Scores != nil
}

// ScoreAt returns the points for contributor i, or 0 when there is no data.
func (s SideSnapshot) ScoreAt(i int) int {
	if i < 0 || i >= len(s.Scores) {
		return 0
	}
	return s.Scores[i]
}

// ContributorSum returns the sum of the per-contributor scores.
func (s SideSnapshot) ContributorSum() int {
	sum := 0
	for _, v := range s.Scores {
		sum += v
	}
	return sum
}
