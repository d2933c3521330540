// Package intent converts untrusted draft intents into normalized,
// schema-valid Intent values. The sanitizer is the sole trust boundary
// between the draft producers (LLM or regex fallback) and the compiler:
// it never fails, degrading to safe defaults on any ambiguity.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/gazetteer"
	"github.com/kiyer/argoquery/internal/schema"
)

// columns never offered as metrics
var identityColumns = map[string]struct{}{
	"float_id":  {},
	"latitude":  {},
	"longitude": {},
	"timestamp": {},
}

const (
	defaultDistanceKm = 500
	defaultListLimit  = 5
	defaultBulkLimit  = 500
)

var (
	latRe         = regexp.MustCompile(`(?i)latitude\s+(-?\d+(?:\.\d+)?)`)
	lonRe         = regexp.MustCompile(`(?i)longitude\s+(-?\d+(?:\.\d+)?)`)
	pairRe        = regexp.MustCompile(`(?i)(?:near|at|around)\s*(-?\d+(?:\.\d+)?)\s*[, ]\s*(-?\d+(?:\.\d+)?)`)
	nearestNRe    = regexp.MustCompile(`(?i)nearest\s+(\d{1,3})\s+float`)
	proximityHint = regexp.MustCompile(`(?i)nearest|within\s+\d+\s*km`)
	floatPrefixRe = regexp.MustCompile(`(?i)^float\s*#?\s*(\d+)$`)
	questionFidRe = regexp.MustCompile(`(?i)\bfloat\s*#?\s*(\d{3,})\b`)
)

// Sanitize applies the normalization rules in order and always returns
// a complete Intent. raw comes from an unreliable upstream; nothing in
// it is trusted until it has passed through here.
func Sanitize(raw model.RawIntent, question string, snap schema.Snapshot, gaz *gazetteer.Gazetteer) model.Intent {
	if raw == nil {
		raw = model.RawIntent{}
	}
	out := model.Intent{}

	// rule 1: query type, defaulting to General
	out.QueryType = normalizeQueryType(asString(raw["query_type"]))

	// rule 3: "float <n>" is a float identifier, never a place
	locName := strings.ToLower(asString(raw["location_name"]))
	if m := floatPrefixRe.FindStringSubmatch(locName); m != nil {
		if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			out.FloatID = &n
		}
		locName = ""
	}
	out.LocationName = locName

	// rule 6 (numerics first; later rules depend on them)
	if v, ok := raw["float_id"]; ok && out.FloatID == nil {
		if n := asIntLoose(v, 0); n > 0 {
			fid := int64(n)
			out.FloatID = &fid
		}
	}
	out.Limit = asInt(raw["limit"], 0)
	out.DistanceKm = asIntLoose(raw["distance_km"], 0)
	out.Year = asInt(raw["year"], 0)
	out.Month = asInt(raw["month"], 0)
	if out.Month < 1 || out.Month > 12 {
		out.Month = 0
	}
	if lat, ok := asFloat(raw["latitude"]); ok && lat >= -90 && lat <= 90 {
		out.Latitude = &lat
	}
	if lon, ok := asFloat(raw["longitude"]); ok && lon >= -180 && lon <= 180 {
		out.Longitude = &lon
	}

	out.TimeConstraint = asString(raw["time_constraint"])
	out.Aggregation = normalizeAggregation(asString(raw["aggregation"]))

	// rule 4: regex assist from the raw question
	applyQuestionAssists(&out, question)

	// rule 2: metrics restricted to live schema columns
	out.Metrics = sanitizeMetrics(asStrings(raw["metrics"]), snap)

	// rule 5: proximity intents resolve location to a centroid
	if out.QueryType == model.QueryProximity && (out.Latitude == nil || out.Longitude == nil) {
		if e, ok := gaz.Resolve(out.LocationName); ok {
			lat, lon := e.CentroidLat, e.CentroidLon
			out.Latitude = &lat
			out.Longitude = &lon
		}
	}

	// rule 6 defaults
	if out.DistanceKm <= 0 {
		out.DistanceKm = defaultDistanceKm
	}
	if out.Limit <= 0 {
		if out.QueryType == model.QueryProximity {
			out.Limit = defaultListLimit
		} else {
			out.Limit = defaultBulkLimit
		}
	}

	// rule 8: attach the bounding predicate; nil stands for the
	// tautology and lets the compiler distinguish "no filter" from
	// "unsupported name"
	if e, ok := gaz.Resolve(out.LocationName); ok {
		b := e.Bounds
		out.Location = &b
	}

	return out
}

func normalizeQueryType(s string) model.QueryType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-")) {
	case "statistic", "statistics":
		return model.QueryStatistic
	case "proximity":
		return model.QueryProximity
	case "trajectory", "path":
		return model.QueryTrajectory
	case "profile":
		return model.QueryProfile
	case "time-series", "timeseries":
		return model.QueryTimeSeries
	case "scatter":
		return model.QueryScatter
	default:
		return model.QueryGeneral
	}
}

func normalizeAggregation(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avg", "average", "mean":
		return "avg"
	case "max", "maximum":
		return "max"
	case "min", "minimum":
		return "min"
	case "count":
		return "count"
	case "sum", "total":
		return "sum"
	default:
		return "avg"
	}
}

// sanitizeMetrics keeps only schema columns, deduplicated in draft
// order, then falls back to every non-identity column and finally to a
// single default metric.
func sanitizeMetrics(draft []string, snap schema.Snapshot) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range draft {
		m = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(m)), " ", "_")
		if m == "" || !snap.Has(m) {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if len(out) > 0 {
		return out
	}
	for _, c := range snap.Columns() {
		if _, id := identityColumns[c]; id {
			continue
		}
		out = append(out, c)
	}
	if len(out) > 0 {
		return out
	}
	if snap.Has("temperature") {
		return []string{"temperature"}
	}
	if cols := snap.Columns(); len(cols) > 0 {
		return []string{cols[0]}
	}
	return []string{}
}

// applyQuestionAssists harvests coordinates, limits and float ids the
// draft producer may have missed from the question text itself.
func applyQuestionAssists(out *model.Intent, question string) {
	if out.Latitude == nil || out.Longitude == nil {
		var lat, lon *float64
		if lm, gm := latRe.FindStringSubmatch(question), lonRe.FindStringSubmatch(question); lm != nil && gm != nil {
			if a, err := strconv.ParseFloat(lm[1], 64); err == nil {
				if b, err := strconv.ParseFloat(gm[1], 64); err == nil {
					lat, lon = &a, &b
				}
			}
		}
		if lat == nil {
			if pm := pairRe.FindStringSubmatch(question); pm != nil {
				if a, err := strconv.ParseFloat(pm[1], 64); err == nil {
					if b, err := strconv.ParseFloat(pm[2], 64); err == nil {
						lat, lon = &a, &b
					}
				}
			}
		}
		if lat != nil && lon != nil && *lat >= -90 && *lat <= 90 && *lon >= -180 && *lon <= 180 {
			out.Latitude = lat
			out.Longitude = lon
			if proximityHint.MatchString(question) && out.QueryType != model.QueryProximity {
				out.QueryType = model.QueryProximity
			}
		}
	}

	if out.Limit <= 0 {
		if m := nearestNRe.FindStringSubmatch(question); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				out.Limit = n
			}
		}
	}

	if out.FloatID == nil {
		if m := questionFidRe.FindStringSubmatch(question); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				out.FloatID = &n
			}
		}
	}
}
