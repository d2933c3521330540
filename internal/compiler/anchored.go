package compiler

import (
	"fmt"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/schema"
)

func (c *Compiler) compileTrajectory(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	if in.FloatID == nil {
		return model.CompiledQuery{}, &model.CompileError{
			Kind:    model.ErrMissingFloatID,
			Message: "a trajectory query needs a float identifier",
		}
	}

	args := &argList{}
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	metrics := in.Metrics
	if len(metrics) == 0 {
		metrics = availableSensors(snap)
	}
	cols := selectList(availableBase(snap), metrics)

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE "float_id" = %s AND %s ORDER BY "timestamp" ASC LIMIT %s`,
		strings.Join(quoteAll(cols), ", "), c.table, args.add(*in.FloatID), tc, args.add(in.Limit))
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryTrajectory}, nil
}

// compileProfile returns the most recent full reading for a float, or
// for a location/time filter when no float is given, ordered by the
// depth column. The anchor rule: at least one of float id, location or
// a recognized time filter must be present.
func (c *Compiler) compileProfile(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	metrics := in.Metrics
	if len(metrics) == 0 {
		metrics = availableSensors(snap)
	}
	tail := []string{}
	for _, b := range []string{"pressure", "latitude", "longitude", "float_id", "timestamp"} {
		if snap.Has(b) {
			tail = append(tail, b)
		}
	}
	cols := selectList(metrics, tail)

	orderBy := ""
	if snap.Has("pressure") {
		orderBy = ` ORDER BY "pressure" ASC`
	} else if snap.Has("timestamp") {
		orderBy = ` ORDER BY "timestamp" ASC`
	}

	args := &argList{}

	if in.FloatID != nil {
		fidP := args.add(*in.FloatID)
		where := fmt.Sprintf(`"float_id" = %s`, fidP)
		tc, err := timeClause(args, in, temporal)
		if err != nil {
			return model.CompiledQuery{}, err
		}
		if tc != "1=1" {
			where += " AND " + tc
		}
		sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND "timestamp" = (SELECT MAX("timestamp") FROM %s WHERE %s)%s`,
			strings.Join(quoteAll(cols), ", "), c.table, where, c.table, where, orderBy)
		return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryProfile}, nil
	}

	var clauses []string
	if in.Location != nil {
		clauses = append(clauses, locationClause(args, in.Location))
	}
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}
	if tc != "1=1" {
		clauses = append(clauses, tc)
	}
	if len(clauses) == 0 {
		return model.CompiledQuery{}, &model.CompileError{
			Kind:    model.ErrMissingAnchor,
			Message: "a profile query needs a float identifier, a location, or a time filter",
		}
	}
	where := strings.Join(clauses, " AND ")

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE %s AND "timestamp" = (SELECT MAX("timestamp") FROM %s WHERE %s)%s`,
		strings.Join(quoteAll(cols), ", "), c.table, where, c.table, where, orderBy)
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryProfile}, nil
}

// CandidateFloats compiles the recovery query the boundary layer runs
// when a trajectory or profile intent lacks a float id: distinct floats
// matching the intent's filters with their last known position.
func (c *Compiler) CandidateFloats(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	if err := c.checkLocation(in); err != nil {
		return model.CompiledQuery{}, err
	}

	args := &argList{}
	loc := locationClause(args, in.Location)
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	cols := availableBase(snap)
	sql := fmt.Sprintf(`SELECT DISTINCT ON ("float_id") %s FROM %s WHERE %s AND %s ORDER BY "float_id" ASC, "timestamp" DESC LIMIT %s`,
		strings.Join(quoteAll(cols), ", "), c.table, loc, tc, args.add(candidateLimit))
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: in.QueryType}, nil
}
