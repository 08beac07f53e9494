package league

import (
	"fmt"
	"sort"
)

// SampleRoster returns n fresh competitors named Player_1 through Player_n,
// the roster used to seed an empty store.
func SampleRoster(n int) []*Competitor {
	roster := make([]*Competitor, n)
	for i := range roster {
		roster[i] = NewCompetitor(int64(i+1), fmt.Sprintf("Player_%d", i+1))
	}
	return roster
}

// TopByRating returns up to n competitors ordered by rating, best first.
// n <= 0 means no limit. The input slice is left untouched.
func TopByRating(roster []*Competitor, n int) []*Competitor {
	top := make([]*Competitor, len(roster))
	copy(top, roster)

	sort.SliceStable(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })

	if n > 0 && len(top) > n {
		top = top[:n]
	}
	return top
}
