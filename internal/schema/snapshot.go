// Package schema provides immutable snapshots of the measurement
// table's live column set and observed time range.
package schema

import "sort"

// Snapshot is the set of column names currently valid on the
// measurement table. Treated as read-only by every consumer; a new
// value is built on each refresh, never mutated in place.
type Snapshot struct {
	cols []string
	set  map[string]struct{}
}

func NewSnapshot(cols []string) Snapshot {
	s := Snapshot{
		cols: make([]string, 0, len(cols)),
		set:  make(map[string]struct{}, len(cols)),
	}
	for _, c := range cols {
		if _, dup := s.set[c]; dup {
			continue
		}
		s.set[c] = struct{}{}
		s.cols = append(s.cols, c)
	}
	sort.Strings(s.cols)
	return s
}

func (s Snapshot) Has(col string) bool {
	_, ok := s.set[col]
	return ok
}

// Columns returns the column names in sorted order.
func (s Snapshot) Columns() []string {
	out := make([]string, len(s.cols))
	copy(out, s.cols)
	return out
}

func (s Snapshot) Len() int { return len(s.cols) }
