package roster

import "fmt"

// Selection is a validated team index bound to one roster.
type Selection struct {
	index int
	size  int
}

// Select validates index against r.
func (r *Roster) Select(index int) (Selection, error) {
	if _, err := r.TeamAt(index); err != nil {
		return Selection{}, err
	}
	return Selection{index: index, size: r.TeamCount()}, nil
}

// DefaultSelections returns the starting selections for side A and side B:
// the first and second team, or the first team twice on a one-team roster.
func (r *Roster) DefaultSelections() (Selection, Selection) {
	b := 1
	if r.TeamCount() < 2 {
		b = 0
	}
	return Selection{index: 0, size: r.TeamCount()}, Selection{index: b, size: r.TeamCount()}
}

// Index returns the selected team index.
func (s Selection) Index() int {
	return s.index
}

// Next cycles forward one team, wrapping to the first after the last.
func (s Selection) Next() Selection {
	if s.size <= 0 {
		return s
	}
	return Selection{index: (s.index + 1) % s.size, size: s.size}
}

func (s Selection) String() string {
	return fmt.Sprintf("%d/%d", s.index, s.size)
}
