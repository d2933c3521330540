package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kiyer/argoquery/internal/core/model"
)

// Trajectory is the float-trajectory payload: the path as [lat, lon]
// pairs plus the covered time span.
type Trajectory struct {
	Path      [][2]float64 `json:"path"`
	StartTS   time.Time    `json:"start_timestamp"`
	EndTS     time.Time    `json:"end_timestamp"`
	NumPoints int          `json:"num_points"`
}

// Location is one gazetteer entry exposed to the map UI.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// NearestFloats returns the latest position of the floats closest to a
// point, optionally restricted to a year/month.
func (s *Service) NearestFloats(ctx context.Context, lat, lon float64, limit, year, month int) ([]model.Row, error) {
	if limit <= 0 {
		limit = 4
	}
	in := model.Intent{
		QueryType: model.QueryProximity,
		Latitude:  &lat,
		Longitude: &lon,
		Year:      year,
		Month:     month,
		Limit:     limit,
	}
	q, err := s.comp.Compile(in, s.schema.Snapshot(), s.schema.Temporal())
	if err != nil {
		return nil, fmt.Errorf("compile nearest floats: %w", err)
	}
	return s.exec.Run(ctx, q)
}

// FloatProfile returns the most recent full reading for a float.
func (s *Service) FloatProfile(ctx context.Context, floatID int64, year, month int) ([]model.Row, error) {
	in := model.Intent{
		QueryType: model.QueryProfile,
		FloatID:   &floatID,
		Year:      year,
		Month:     month,
		Limit:     500,
	}
	q, err := s.comp.Compile(in, s.schema.Snapshot(), s.schema.Temporal())
	if err != nil {
		return nil, fmt.Errorf("compile float profile: %w", err)
	}
	return s.exec.Run(ctx, q)
}

// FloatTrajectory returns the ordered path of a float.
func (s *Service) FloatTrajectory(ctx context.Context, floatID int64, year, month int) (*Trajectory, error) {
	in := model.Intent{
		QueryType: model.QueryTrajectory,
		FloatID:   &floatID,
		Year:      year,
		Month:     month,
		Limit:     10000,
	}
	q, err := s.comp.Compile(in, s.schema.Snapshot(), s.schema.Temporal())
	if err != nil {
		return nil, fmt.Errorf("compile float trajectory: %w", err)
	}
	rows, err := s.exec.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	tr := &Trajectory{NumPoints: len(rows)}
	for _, r := range rows {
		lat, okLat := asFloat(r["latitude"])
		lon, okLon := asFloat(r["longitude"])
		if !okLat || !okLon {
			continue
		}
		tr.Path = append(tr.Path, [2]float64{lat, lon})
	}
	if ts, ok := rows[0]["timestamp"].(time.Time); ok {
		tr.StartTS = ts
	}
	if ts, ok := rows[len(rows)-1]["timestamp"].(time.Time); ok {
		tr.EndTS = ts
	}
	return tr, nil
}

// Stats returns dashboard totals. The SQL is a trusted constant; only
// the table name is interpolated and it comes from configuration.
func (s *Service) Stats(ctx context.Context) (model.Row, error) {
	sql := `SELECT COUNT(*) AS total_records, COUNT(DISTINCT "float_id") AS unique_floats, ` +
		`MIN("timestamp") AS min_date, MAX("timestamp") AS max_date, ` +
		`ROUND(AVG(NULLIF("temperature", 'NaN'))::numeric, 2) AS avg_temperature, ` +
		`ROUND(AVG(NULLIF("salinity", 'NaN'))::numeric, 2) AS avg_salinity ` +
		`FROM ` + s.cfg.Table
	rows, err := s.exec.Run(ctx, model.CompiledQuery{SQL: sql, QueryType: model.QueryStatistic})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return model.Row{}, nil
	}
	return rows[0], nil
}

// AvailablePeriods maps each year present in the dataset to its months.
func (s *Service) AvailablePeriods(ctx context.Context) (map[string][]int, error) {
	sql := `SELECT DISTINCT EXTRACT(YEAR FROM "timestamp")::INT AS yr, ` +
		`EXTRACT(MONTH FROM "timestamp")::INT AS mo FROM ` + s.cfg.Table + ` ORDER BY yr DESC, mo DESC`
	rows, err := s.exec.Run(ctx, model.CompiledQuery{SQL: sql, QueryType: model.QueryGeneral})
	if err != nil {
		return nil, err
	}

	periods := map[string][]int{}
	for _, r := range rows {
		yr, okY := asFloat(r["yr"])
		mo, okM := asFloat(r["mo"])
		if !okY || !okM {
			continue
		}
		key := fmt.Sprintf("%d", int(yr))
		periods[key] = append(periods[key], int(mo))
	}
	for y := range periods {
		sort.Ints(periods[y])
	}
	return periods, nil
}

// Locations lists every gazetteer entry with its centroid.
func (s *Service) Locations() []Location {
	names := s.gaz.KnownNames()
	out := make([]Location, 0, len(names))
	for _, name := range names {
		e, ok := s.gaz.Resolve(name)
		if !ok {
			continue
		}
		out = append(out, Location{Name: name, Lat: e.CentroidLat, Lon: e.CentroidLon})
	}
	return out
}

// Ping checks database connectivity for the status endpoint.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.exec.Run(ctx, model.CompiledQuery{SQL: "SELECT 1", QueryType: model.QueryGeneral})
	return err
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
