package domain

import (
	"sort"
	"time"
)

// Snapshot describes a filtered table persisted for later analysis.
type Snapshot struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Source    string                 `json:"source"`
	Filters   map[Dimension][]string `json:"filters"`
	RowCount  int                    `json:"row_count"`
	CreatedAt time.Time              `json:"created_at"`
}

// SelectionFilters describes a selection as sorted value lists.
// Unrestricted dimensions are omitted.
func SelectionFilters(sel Selection) map[Dimension][]string {
	out := make(map[Dimension][]string)
	for _, d := range Dimensions() {
		set := sel.Set(d)
		if set.All() {
			continue
		}
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		out[d] = values
	}
	return out
}

// Selection rebuilds the selection a snapshot was taken with.
func (s *Snapshot) Selection() Selection {
	var sel Selection
	for d, values := range s.Filters {
		sel = sel.With(d, NewValueSet(values...))
	}
	return sel
}
