package roster

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is a team returned by Find together with its roster index.
type Match struct {
	Index    int
	Team     Team
	Distance int
}

// Find returns teams whose name fuzzily contains query, closest first.
// Ties keep roster order. An empty query matches nothing.
func (r *Roster) Find(query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	names := make([]string, len(r.teams))
	for i, t := range r.teams {
		names[i] = t.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]Match, 0, len(ranks))
	for _, rk := range ranks {
		out = append(out, Match{
			Index:    rk.OriginalIndex,
			Team:     r.teams[rk.OriginalIndex].Clone(),
			Distance: rk.Distance,
		})
	}
	return out
}
