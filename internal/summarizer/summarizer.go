// Package summarizer produces the statistics digest for a result set.
// It is pure: rows in, string out, no further database access.
package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kiyer/argoquery/internal/core/model"
)

const sampleRecords = 3
const sampleMaxBytes = 500
const fewRecordsBelow = 10

// Digest builds the per-query-type statistics line the narrator (and
// the bare API response, when no narrator is configured) works from.
// dataRange describes the dataset's observed time coverage and is
// appended to empty-result phrasings.
func Digest(in model.Intent, rows []model.Row, dataRange string) string {
	if len(rows) == 0 {
		return emptyDigest(in, dataRange)
	}

	var b strings.Builder

	if mn, mx, ok := minMax(rows, "distance_km"); ok {
		fmt.Fprintf(&b, "Found %d floats. Closest: %.1fkm, Farthest: %.1fkm.", len(rows), mn, mx)
	} else {
		fmt.Fprintf(&b, "Found %d records.", len(rows))
	}

	if ids := uniqueFloatIDs(rows); len(ids) > 0 {
		shown := ids
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fmt.Fprintf(&b, " %d unique float(s): %v.", len(ids), shown)
	}

	if mn, mx, ok := minMax(rows, "temperature"); ok {
		avg, _ := average(rows, "temperature")
		fmt.Fprintf(&b, " Temperature: avg %.1f°C (range: %.1f - %.1f°C).", avg, mn, mx)
	}
	if avg, ok := average(rows, "salinity"); ok {
		fmt.Fprintf(&b, " Avg salinity: %.2f PSU.", avg)
	}

	if latMin, latMax, ok := minMax(rows, "latitude"); ok {
		if lonMin, lonMax, ok := minMax(rows, "longitude"); ok {
			fmt.Fprintf(&b, " Coverage: %.1f° to %.1f°N, %.1f° to %.1f°E.", latMin, latMax, lonMin, lonMax)
		}
	}

	if first, last, ok := timeSpan(rows); ok {
		fmt.Fprintf(&b, " Time span: %s to %s.", first.Format("Jan 02"), last.Format("Jan 02, 2006"))
	}

	if _, mx, ok := minMax(rows, "pressure"); ok {
		fmt.Fprintf(&b, " Max depth: %.0f dbar.", mx)
	}

	if len(rows) < fewRecordsBelow && dataRange != "" {
		fmt.Fprintf(&b, " Few records found. %s.", dataRange)
	}
	return b.String()
}

// Sample renders up to three rows as compact JSON for narrator context.
func Sample(rows []model.Row) string {
	if len(rows) == 0 {
		return ""
	}
	n := len(rows)
	if n > sampleRecords {
		n = sampleRecords
	}
	buf, err := json.Marshal(rows[:n])
	if err != nil {
		return ""
	}
	if len(buf) > sampleMaxBytes {
		buf = buf[:sampleMaxBytes]
	}
	return string(buf)
}

func emptyDigest(in model.Intent, dataRange string) string {
	switch {
	case in.QueryType == model.QueryProximity:
		return "No floats found near the specified location. Try a different location or increase search radius."
	case (in.QueryType == model.QueryTrajectory || in.QueryType == model.QueryProfile) && in.FloatID != nil:
		return fmt.Sprintf("No data found for float ID %d. This float may not exist or have data in this period.", *in.FloatID)
	case hasYearHint(in):
		return appendRange("The requested time period is outside our data range", dataRange)
	default:
		return appendRange("No matching data found", dataRange)
	}
}

func appendRange(msg, dataRange string) string {
	if dataRange == "" {
		return msg + "."
	}
	return msg + ". " + dataRange + "."
}

func hasYearHint(in model.Intent) bool {
	if in.Year != 0 {
		return true
	}
	for _, r := range in.TimeConstraint {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
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

func minMax(rows []model.Row, col string) (mn, mx float64, ok bool) {
	for _, r := range rows {
		f, fine := asFloat(r[col])
		if !fine {
			continue
		}
		if !ok {
			mn, mx, ok = f, f, true
			continue
		}
		if f < mn {
			mn = f
		}
		if f > mx {
			mx = f
		}
	}
	return mn, mx, ok
}

func average(rows []model.Row, col string) (float64, bool) {
	var sum float64
	var n int
	for _, r := range rows {
		if f, ok := asFloat(r[col]); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func uniqueFloatIDs(rows []model.Row) []int64 {
	seen := map[int64]struct{}{}
	var out []int64
	for _, r := range rows {
		f, ok := asFloat(r["float_id"])
		if !ok {
			continue
		}
		id := int64(f)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func timeSpan(rows []model.Row) (first, last time.Time, ok bool) {
	for _, r := range rows {
		ts, fine := asTime(r["timestamp"])
		if !fine {
			continue
		}
		if !ok {
			first, last, ok = ts, ts, true
			continue
		}
		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}
	return first, last, ok
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
