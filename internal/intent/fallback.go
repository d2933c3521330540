package intent

import (
	"context"
	"regexp"
	"strings"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/gazetteer"
)

// FallbackProducer drafts intents with regex and keyword matching. It is
// used when no LLM API key is configured, or when the LLM call fails.
type FallbackProducer struct {
	gaz *gazetteer.Gazetteer
}

func NewFallbackProducer(gaz *gazetteer.Gazetteer) *FallbackProducer {
	return &FallbackProducer{gaz: gaz}
}

var (
	fallbackYearRe  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	fallbackDistRe  = regexp.MustCompile(`within\s+(\d+)\s*km`)
	fallbackLimitRe = regexp.MustCompile(`(?:nearest|top|closest|first)\s+(\d+)`)
	fallbackFloatRe = regexp.MustCompile(`float\s*#?\s*(\d{4,})`)
	lastMonthsRe    = regexp.MustCompile(`last\s+(\d+)\s+months?`)
)

// metricKeywords is ordered so repeated drafts of the same question
// always list metrics in the same order.
var metricKeywords = []struct {
	kw  string
	col string
}{
	{"temperature", "temperature"},
	{"temp", "temperature"},
	{"salinity", "salinity"},
	{"psu", "salinity"},
	{"oxygen", "dissolved_oxygen"},
	{"dissolved oxygen", "dissolved_oxygen"},
	{"chlorophyll", "chlorophyll"},
	{"nitrate", "nitrate"},
	{"ph ", "ph"},
	{"acidity", "ph"},
	{"pressure", "pressure"},
	{"depth", "pressure"},
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

func (p *FallbackProducer) Draft(_ context.Context, question string) (model.RawIntent, error) {
	q := strings.ToLower(question)
	raw := model.RawIntent{}

	raw["query_type"] = classify(q)

	var metrics []string
	seen := map[string]bool{}
	for _, mk := range metricKeywords {
		if strings.Contains(q, mk.kw) && !seen[mk.col] {
			seen[mk.col] = true
			metrics = append(metrics, mk.col)
		}
	}
	if len(metrics) > 0 {
		raw["metrics"] = metrics
	}

	if name := p.findLocation(q); name != "" {
		raw["location_name"] = name
	}

	if m := fallbackFloatRe.FindStringSubmatch(q); m != nil {
		raw["float_id"] = m[1]
	}
	if m := fallbackDistRe.FindStringSubmatch(q); m != nil {
		raw["distance_km"] = m[1]
	}
	if m := fallbackLimitRe.FindStringSubmatch(q); m != nil {
		raw["limit"] = m[1]
	}

	if tc := timePhrase(q); tc != "" {
		raw["time_constraint"] = tc
	}

	switch {
	case strings.Contains(q, "count") || strings.Contains(q, "how many"):
		raw["aggregation"] = "count"
	case strings.Contains(q, "max") || strings.Contains(q, "highest") || strings.Contains(q, "warmest"):
		raw["aggregation"] = "max"
	case strings.Contains(q, "min") || strings.Contains(q, "lowest") || strings.Contains(q, "coldest"):
		raw["aggregation"] = "min"
	case strings.Contains(q, "total") || strings.Contains(q, "sum"):
		raw["aggregation"] = "sum"
	}

	return raw, nil
}

func classify(q string) string {
	switch {
	case strings.Contains(q, "nearest") || strings.Contains(q, "closest") ||
		strings.Contains(q, "near ") || fallbackDistRe.MatchString(q):
		return "Proximity"
	case strings.Contains(q, "trajectory") || strings.Contains(q, "path") ||
		strings.Contains(q, "where has") || strings.Contains(q, "track"):
		return "Trajectory"
	case strings.Contains(q, "profile") || strings.Contains(q, "vs depth") ||
		strings.Contains(q, "by depth") || strings.Contains(q, "with depth"):
		return "Profile"
	case strings.Contains(q, "over time") || strings.Contains(q, "trend") ||
		strings.Contains(q, "time series") || strings.Contains(q, "change"):
		return "Time-Series"
	case strings.Contains(q, "scatter") || strings.Contains(q, " vs ") ||
		strings.Contains(q, "relationship") || strings.Contains(q, "correlat"):
		return "Scatter"
	case strings.Contains(q, "average") || strings.Contains(q, "avg") ||
		strings.Contains(q, "mean") || strings.Contains(q, "max") ||
		strings.Contains(q, "min") || strings.Contains(q, "how many") ||
		strings.Contains(q, "count") || strings.Contains(q, "highest") ||
		strings.Contains(q, "lowest") || strings.Contains(q, "warmest") ||
		strings.Contains(q, "coldest"):
		return "Statistic"
	default:
		return "General"
	}
}

// findLocation returns the longest gazetteer name contained in the
// question, so "bay of bengal" wins over a hypothetical "bengal".
func (p *FallbackProducer) findLocation(q string) string {
	best := ""
	for _, name := range p.gaz.KnownNames() {
		if strings.Contains(q, name) && len(name) > len(best) {
			best = name
		}
	}
	return best
}

func timePhrase(q string) string {
	if lastMonthsRe.MatchString(q) || strings.Contains(q, "last 6 months") {
		return lastMonthsRe.FindString(q)
	}
	var parts []string
	for _, m := range monthNames {
		if strings.Contains(q, m) {
			parts = append(parts, "in "+m)
			break
		}
	}
	if y := fallbackYearRe.FindString(q); y != "" {
		parts = append(parts, "in "+y)
	}
	return strings.Join(parts, " ")
}
