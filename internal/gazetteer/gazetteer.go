// Package gazetteer maps place names to geographic bounding predicates
// and centroid coordinates. The table is static, loaded once at process
// start and shared read-only; lookup is exact lowercase match with no
// fuzzy fallback.
package gazetteer

import (
	"sort"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
)

type Entry struct {
	Name        string
	Bounds      model.LocationBounds
	CentroidLat float64
	CentroidLon float64
}

type Gazetteer struct {
	entries map[string]Entry
	names   []string
}

// New builds the gazetteer from the builtin table. Entries without an
// explicit centroid get the bounding-box midpoint.
func New() *Gazetteer {
	g := &Gazetteer{entries: make(map[string]Entry, len(table))}
	for _, e := range table {
		if e.CentroidLat == 0 && e.CentroidLon == 0 {
			e.CentroidLat = (e.Bounds.MinLat + e.Bounds.MaxLat) / 2
			e.CentroidLon = (e.Bounds.MinLon + e.Bounds.MaxLon) / 2
		}
		g.entries[e.Name] = e
		g.names = append(g.names, e.Name)
	}
	sort.Strings(g.names)
	return g
}

// Resolve returns the entry for name, matching case-insensitively on
// the exact key. Unknown names are rejected, never guessed.
func (g *Gazetteer) Resolve(name string) (Entry, bool) {
	e, ok := g.entries[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// KnownNames returns every supported name in sorted order. Used to
// build the "valid locations are: ..." error message.
func (g *Gazetteer) KnownNames() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len reports the number of entries.
func (g *Gazetteer) Len() int { return len(g.entries) }
