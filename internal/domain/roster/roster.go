// Package roster holds the immutable table of teams and their contributors.
//
// A Roster is built once at startup and never mutated. Team and contributor
// positions are plain integer indexes; every lookup validates them here so
// unchecked indexes never reach the match or outcome packages.
package roster

import (
	"fmt"
	"strings"
)

// Team is one selectable side of a match.
type Team struct {
	ID           int      `json:"id" koanf:"id"`
	Name         string   `json:"name" koanf:"name"`
	Color        string   `json:"color" koanf:"color"`
	Logo         string   `json:"logo" koanf:"logo"`
	Contributors []string `json:"contributors" koanf:"contributors"`
}

// ContributorCount returns the number of contributors on the team.
func (t Team) ContributorCount() int {
	return len(t.Contributors)
}

// ContributorAt returns the contributor name at index i.
func (t Team) ContributorAt(i int) (string, error) {
	if i < 0 || i >= len(t.Contributors) {
		return "", fmt.Errorf("contributor %d of team %q: %w", i, t.Name, ErrOutOfRange)
	}
	return t.Contributors[i], nil
}

// Clone returns a deep copy of t.
func (t Team) Clone() Team {
	c := t
	c.Contributors = append([]string(nil), t.Contributors...)
	return c
}

// Roster is an ordered, read-only list of teams.
type Roster struct {
	teams []Team
}

// New validates teams and returns a Roster holding a private copy of them.
func New(teams []Team) (*Roster, error) {
	if len(teams) == 0 {
		return nil, ErrEmptyRoster
	}
	r := &Roster{teams: make([]Team, len(teams))}
	for i, t := range teams {
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("team %d: missing name: %w", i, ErrInvalidTeam)
		}
		r.teams[i] = t.Clone()
	}
	return r, nil
}

// TeamCount returns the number of teams.
func (r *Roster) TeamCount() int {
	return len(r.teams)
}

// TeamAt returns the team at index, or ErrOutOfRange.
func (r *Roster) TeamAt(index int) (Team, error) {
	if index < 0 || index >= len(r.teams) {
		return Team{}, fmt.Errorf("team %d of %d: %w", index, len(r.teams), ErrOutOfRange)
	}
	return r.teams[index].Clone(), nil
}

// Teams returns a copy of every team in roster order.
func (r *Roster) Teams() []Team {
	out := make([]Team, len(r.teams))
	for i, t := range r.teams {
		out[i] = t.Clone()
	}
	return out
}
