// Package compiler turns a sanitized Intent into parameterized SQL.
// Compilation is pure: the same (intent, snapshot, temporal) triple
// always yields identical SQL text and parameter vectors. Column and
// table identifiers come only from the schema snapshot intersected
// with the canonical column list; every user-influenced value is a
// bound parameter.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/schema"
)

// base columns every query shape projects
var baseColumns = []string{"float_id", "timestamp", "latitude", "longitude"}

// canonical sensor columns, in display order
var sensorColumns = []string{
	"temperature", "salinity", "dissolved_oxygen",
	"chlorophyll", "nitrate", "ph", "pressure",
}

const (
	scatterCeiling = 1000
	generalCeiling = 500
	candidateLimit = 20
)

type Compiler struct {
	table      string
	knownNames []string
}

// New builds a compiler bound to a measurement table. knownNames is the
// gazetteer name list used in unsupported-location messages; table must
// be a trusted configuration constant, never request input.
func New(table string, knownNames []string) *Compiler {
	if table == "" {
		table = "argo_data"
	}
	return &Compiler{table: table, knownNames: knownNames}
}

// Compile dispatches on the query type. The switch is exhaustive over
// the QueryType constants; an unknown type degrades to General rather
// than failing, mirroring the sanitizer's defaulting.
func (c *Compiler) Compile(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	if err := c.checkMetrics(in, snap); err != nil {
		return model.CompiledQuery{}, err
	}
	if err := c.checkLocation(in); err != nil {
		return model.CompiledQuery{}, err
	}

	switch in.QueryType {
	case model.QueryStatistic:
		return c.compileStatistic(in, snap, temporal)
	case model.QueryProximity:
		return c.compileProximity(in, snap, temporal)
	case model.QueryTrajectory:
		return c.compileTrajectory(in, snap, temporal)
	case model.QueryProfile:
		return c.compileProfile(in, snap, temporal)
	case model.QueryTimeSeries:
		return c.compileTimeSeries(in, snap, temporal)
	case model.QueryScatter:
		return c.compileScatter(in, snap, temporal)
	case model.QueryGeneral:
		return c.compileGeneral(in, snap, temporal)
	default:
		return c.compileGeneral(in, snap, temporal)
	}
}

// checkMetrics is the defensive schema guard. The sanitizer already
// filters metrics against the snapshot, so a failure here means a bug
// upstream; it must still surface as a typed error, not bad SQL.
func (c *Compiler) checkMetrics(in model.Intent, snap schema.Snapshot) error {
	for _, m := range in.Metrics {
		if !snap.Has(m) {
			return &model.CompileError{
				Kind:    model.ErrSchemaColumnUnavailable,
				Message: fmt.Sprintf("the sensor %q is not available in the current dataset", m),
			}
		}
	}
	return nil
}

// checkLocation rejects named locations the gazetteer could not
// resolve. A nil Location with an empty name simply means no filter.
func (c *Compiler) checkLocation(in model.Intent) error {
	if in.LocationName != "" && in.Location == nil {
		return &model.CompileError{
			Kind: model.ErrUnsupportedLocation,
			Message: fmt.Sprintf("unsupported location %q; valid locations are: %s",
				in.LocationName, strings.Join(c.knownNames, ", ")),
		}
	}
	return nil
}

// argList accumulates bound parameters and hands out $n placeholders.
type argList struct {
	vals []any
}

func (a *argList) add(v any) string {
	a.vals = append(a.vals, v)
	return "$" + strconv.Itoa(len(a.vals))
}

// quote wraps a column identifier in double quotes. Callers must only
// pass names validated against the snapshot or the canonical lists.
func quote(col string) string { return `"` + col + `"` }

func quoteAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quote(c)
	}
	return out
}

// locationClause renders the bounding predicate with bound parameters,
// or the tautology when no location filter applies.
func locationClause(args *argList, loc *model.LocationBounds) string {
	if loc == nil {
		return "1=1"
	}
	lat := fmt.Sprintf(`"latitude" BETWEEN %s AND %s`, args.add(loc.MinLat), args.add(loc.MaxLat))
	if loc.LatOnly {
		return lat
	}
	lon := fmt.Sprintf(`"longitude" BETWEEN %s AND %s`, args.add(loc.MinLon), args.add(loc.MaxLon))
	return lat + " AND " + lon
}

// availableBase returns the base columns present in the snapshot, in
// canonical order.
func availableBase(snap schema.Snapshot) []string {
	var out []string
	for _, c := range baseColumns {
		if snap.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// availableSensors returns the canonical sensor columns present in the
// snapshot, in canonical order.
func availableSensors(snap schema.Snapshot) []string {
	var out []string
	for _, c := range sensorColumns {
		if snap.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// selectList deduplicates base + metric columns preserving order.
func selectList(base, metrics []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range append(append([]string{}, base...), metrics...) {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
