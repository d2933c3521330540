package compiler

import (
	"fmt"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/schema"
)

// nanGuard wraps an aggregate around NULLIF so sentinel NaN values
// never pollute the result.
func nanGuard(agg, col string) string {
	return fmt.Sprintf(`%s(NULLIF(%s, 'NaN')) AS %s`, strings.ToUpper(agg), quote(col), quote(col))
}

func (c *Compiler) compileStatistic(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	args := &argList{}
	loc := locationClause(args, in.Location)
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	var exprs, cols []string
	switch {
	case in.Aggregation == "count":
		exprs = []string{`COUNT(DISTINCT "float_id") AS "count"`}
		cols = []string{"count"}
	case len(in.Metrics) > 0:
		for _, m := range in.Metrics {
			exprs = append(exprs, nanGuard(in.Aggregation, m))
			cols = append(cols, m)
		}
	default:
		exprs = []string{`COUNT("float_id") AS "count"`}
		cols = []string{"count"}
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND %s`,
		strings.Join(exprs, ", "), c.table, loc, tc)
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryStatistic}, nil
}

func (c *Compiler) compileTimeSeries(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	args := &argList{}
	loc := locationClause(args, in.Location)
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	metrics := in.Metrics
	if len(metrics) == 0 {
		metrics = availableSensors(snap)
	}

	exprs := []string{`DATE_TRUNC('day', "timestamp") AS day`}
	cols := []string{"day"}
	if snap.Has("latitude") {
		exprs = append(exprs, `AVG("latitude") AS latitude`)
		cols = append(cols, "latitude")
	}
	if snap.Has("longitude") {
		exprs = append(exprs, `AVG("longitude") AS longitude`)
		cols = append(cols, "longitude")
	}
	for _, m := range metrics {
		exprs = append(exprs, nanGuard("avg", m))
		cols = append(cols, m)
	}
	if len(exprs) == 1 {
		exprs = append(exprs, `COUNT("float_id") AS count`)
		cols = append(cols, "count")
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND %s GROUP BY day ORDER BY day ASC`,
		strings.Join(exprs, ", "), c.table, loc, tc)
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryTimeSeries}, nil
}

func (c *Compiler) compileScatter(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	args := &argList{}
	loc := locationClause(args, in.Location)
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	metrics := in.Metrics
	if len(metrics) < 2 {
		metrics = nil
		for _, m := range []string{"temperature", "salinity"} {
			if snap.Has(m) {
				metrics = append(metrics, m)
			}
		}
	}
	if len(metrics) == 0 {
		return model.CompiledQuery{}, &model.CompileError{
			Kind:    model.ErrSchemaColumnUnavailable,
			Message: "no sensor columns are available for a scatter query",
		}
	}

	var notNull []string
	for _, m := range metrics {
		notNull = append(notNull, quote(m)+" IS NOT NULL")
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND %s AND %s LIMIT %s`,
		strings.Join(quoteAll(metrics), ", "), c.table, loc, tc,
		strings.Join(notNull, " AND "), args.add(scatterCeiling))
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: metrics, QueryType: model.QueryScatter}, nil
}

func (c *Compiler) compileGeneral(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	args := &argList{}
	loc := locationClause(args, in.Location)
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	cols := selectList(availableBase(snap), availableSensors(snap))
	if len(cols) == 0 {
		cols = snap.Columns()
	}
	limit := in.Limit
	if limit <= 0 || limit > generalCeiling {
		limit = generalCeiling
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND %s LIMIT %s`,
		strings.Join(quoteAll(cols), ", "), c.table, loc, tc, args.add(limit))
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryGeneral}, nil
}
