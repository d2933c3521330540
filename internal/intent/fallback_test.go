package intent

import (
	"context"
	"reflect"
	"testing"

	"github.com/kiyer/argoquery/internal/gazetteer"
)

func TestFallbackClassification(t *testing.T) {
	p := NewFallbackProducer(gazetteer.New())
	cases := map[string]string{
		"find the nearest floats to chennai":            "Proximity",
		"show the trajectory of float 2902115":          "Trajectory",
		"temperature vs depth profile":                  "Profile",
		"how has salinity changed over time":            "Time-Series",
		"temperature vs salinity in the arabian sea":    "Scatter",
		"what is the average temperature near chennai":  "Proximity",
		"what is the average temperature in the indian": "Statistic",
		"tell me about argo floats":                     "General",
	}
	for q, want := range cases {
		raw, err := p.Draft(context.Background(), q)
		if err != nil {
			t.Fatalf("Draft(%q): %v", q, err)
		}
		if got := raw["query_type"]; got != want {
			t.Fatalf("Draft(%q) query_type = %v, want %s", q, got, want)
		}
	}
}

func TestFallbackExtraction(t *testing.T) {
	p := NewFallbackProducer(gazetteer.New())
	raw, err := p.Draft(context.Background(), "highest dissolved oxygen within 700 km of the bay of bengal in march 2023 for float 2902746, top 4")
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}

	if got := raw["location_name"]; got != "bay of bengal" {
		t.Fatalf("location_name = %v, want bay of bengal", got)
	}
	if got := raw["distance_km"]; got != "700" {
		t.Fatalf("distance_km = %v, want 700", got)
	}
	if got := raw["float_id"]; got != "2902746" {
		t.Fatalf("float_id = %v, want 2902746", got)
	}
	if got := raw["limit"]; got != "4" {
		t.Fatalf("limit = %v, want 4", got)
	}
	if got := raw["aggregation"]; got != "max" {
		t.Fatalf("aggregation = %v, want max", got)
	}

	metrics, _ := raw["metrics"].([]string)
	found := false
	for _, m := range metrics {
		if m == "dissolved_oxygen" {
			found = true
		}
	}
	if !found {
		t.Fatalf("metrics = %v, want dissolved_oxygen present", metrics)
	}

	tc, _ := raw["time_constraint"].(string)
	if tc != "in march in 2023" {
		t.Fatalf("time_constraint = %q, want %q", tc, "in march in 2023")
	}
}

func TestFallbackDraftSurvivesSanitizer(t *testing.T) {
	p := NewFallbackProducer(gazetteer.New())
	questions := []string{
		"",
		"nearest 2 floats to mumbai",
		"salinity trend in the southern ocean over the last 6 months",
		"?????",
	}
	for _, q := range questions {
		raw, err := p.Draft(context.Background(), q)
		if err != nil {
			t.Fatalf("Draft(%q): %v", q, err)
		}
		got := Sanitize(raw, q, testSnapshot(), gazetteer.New())
		if got.QueryType == "" {
			t.Fatalf("Sanitize(Draft(%q)) produced empty query type", q)
		}
		if len(got.Metrics) == 0 {
			t.Fatalf("Sanitize(Draft(%q)) produced no metrics", q)
		}
	}
}

func TestFallbackMetricOrderStable(t *testing.T) {
	p := NewFallbackProducer(gazetteer.New())
	q := "scatter of salinity, temperature and oxygen"
	want := []string{"temperature", "salinity", "dissolved_oxygen"}

	for i := 0; i < 20; i++ {
		raw, err := p.Draft(context.Background(), q)
		if err != nil {
			t.Fatalf("Draft: %v", err)
		}
		got, _ := raw["metrics"].([]string)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("run %d: metrics = %v, want %v", i, got, want)
		}
	}
}
