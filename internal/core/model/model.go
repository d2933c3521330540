// Package model defines core domain types shared across the service.
package model

import "time"

// QueryType is the closed set of query shapes the compiler understands.
type QueryType string

const (
	QueryStatistic  QueryType = "Statistic"
	QueryProximity  QueryType = "Proximity"
	QueryTrajectory QueryType = "Trajectory"
	QueryProfile    QueryType = "Profile"
	QueryTimeSeries QueryType = "Time-Series"
	QueryScatter    QueryType = "Scatter"
	QueryGeneral    QueryType = "General"
)

// QueryTypes lists every valid query type.
var QueryTypes = []QueryType{
	QueryStatistic, QueryProximity, QueryTrajectory,
	QueryProfile, QueryTimeSeries, QueryScatter, QueryGeneral,
}

// RawIntent is the untrusted draft produced by the LLM or the regex
// fallback. No guarantees about types, completeness or value ranges.
// Only the sanitizer may consume it.
type RawIntent map[string]any

// LocationBounds is a rectangular latitude/longitude predicate. LatOnly
// marks band entries (equator, tropics) that constrain latitude alone.
type LocationBounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	LatOnly        bool
}

// Intent is the normalized, fully typed representation of a request.
// It is complete only after sanitization: every field is inside its
// declared domain and Metrics never names a column absent from the
// schema snapshot.
type Intent struct {
	QueryType      QueryType
	Metrics        []string
	LocationName   string
	Location       *LocationBounds // nil means no location filter resolved
	Latitude       *float64
	Longitude      *float64
	DistanceKm     int
	TimeConstraint string
	Year           int // 0 means unset
	Month          int // 0 means unset
	Aggregation    string
	FloatID        *int64
	Limit          int
}

// Temporal anchors time-relative compilation. DataMax is the latest
// observed timestamp in the dataset ("last 6 months" is relative to it,
// not the wall clock); CurrentYear bounds year validation. Both come
// from the caller so compilation stays deterministic.
type Temporal struct {
	DataMin     time.Time
	DataMax     time.Time
	CurrentYear int
}

// CompiledQuery is the immutable compiler output: SQL text with
// positional placeholders, the bound parameter vector, and the ordered
// output column names the summarizer keys on.
type CompiledQuery struct {
	SQL       string
	Args      []any
	Columns   []string
	QueryType QueryType
}

// Row is one result record keyed by output column name.
type Row map[string]any

// Response is the payload returned to the API layer.
type Response struct {
	QueryType string `json:"query_type"`
	SQLQuery  string `json:"sql_query,omitempty"`
	Summary   string `json:"summary"`
	Data      []Row  `json:"data"`
	DataRange string `json:"data_range,omitempty"`
}
