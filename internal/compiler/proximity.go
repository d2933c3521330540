package compiler

import (
	"fmt"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/schema"
)

// compileProximity is the signature shape: restrict to the time window,
// keep the latest row per float (top-1 per partition), rank by
// great-circle distance from the target point, then filter and limit.
// Ties on distance break by float id ascending so the order is stable.
func (c *Compiler) compileProximity(in model.Intent, snap schema.Snapshot, temporal model.Temporal) (model.CompiledQuery, error) {
	if in.Latitude == nil || in.Longitude == nil {
		return model.CompiledQuery{}, &model.CompileError{
			Kind:    model.ErrMissingCoordinates,
			Message: "a proximity query needs coordinates or a known location name",
		}
	}

	args := &argList{}
	tc, err := timeClause(args, in, temporal)
	if err != nil {
		return model.CompiledQuery{}, err
	}

	projCols := selectList(availableBase(snap), in.Metrics)
	proj := strings.Join(quoteAll(projCols), ", ")

	latP := args.add(*in.Latitude)
	lonP := args.add(*in.Longitude)
	distance := fmt.Sprintf(
		`(6371 * acos(cos(radians(%s)) * cos(radians("latitude")) * cos(radians("longitude") - radians(%s)) + sin(radians(%s)) * sin(radians("latitude"))))`,
		latP, lonP, latP)

	distanceFilter := ""
	if in.DistanceKm > 0 {
		distanceFilter = fmt.Sprintf("WHERE distance_km <= %s\n", args.add(in.DistanceKm))
	}

	sql := fmt.Sprintf(`WITH ranked_samples AS (
    SELECT %s,
        ROW_NUMBER() OVER (PARTITION BY "float_id" ORDER BY "timestamp" DESC) AS ts_rank
    FROM %s
    WHERE %s
),
latest_samples AS (
    SELECT %s
    FROM ranked_samples
    WHERE ts_rank = 1
),
distances AS (
    SELECT %s,
        %s AS distance_km
    FROM latest_samples
)
SELECT %s, distance_km
FROM distances
%sORDER BY distance_km ASC, "float_id" ASC
LIMIT %s`,
		proj, c.table, tc, proj, proj, distance, proj, distanceFilter, args.add(in.Limit))

	cols := append(append([]string{}, projCols...), "distance_km")
	return model.CompiledQuery{SQL: sql, Args: args.vals, Columns: cols, QueryType: model.QueryProximity}, nil
}
