package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/kiyer/argoquery/internal/core/model"
)

func TestDigestProximity(t *testing.T) {
	rows := []model.Row{
		{"float_id": int64(101), "distance_km": 5.2, "temperature": 28.4, "latitude": 13.0, "longitude": 80.3, "timestamp": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"float_id": int64(102), "distance_km": 49.8, "temperature": 27.6, "latitude": 12.8, "longitude": 80.9, "timestamp": time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	got := Digest(model.Intent{QueryType: model.QueryProximity}, rows, "Data available from 2022 to 2025")

	for _, want := range []string{
		"Found 2 floats.",
		"Closest: 5.2km",
		"Farthest: 49.8km",
		"2 unique float(s): [101 102]",
		"Temperature: avg 28.0°C",
		"Time span: Mar 01 to Mar 15, 2024",
		"Few records found.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("digest missing %q:\n%s", want, got)
		}
	}
}

func TestDigestListsAtMostFiveFloats(t *testing.T) {
	var rows []model.Row
	for i := int64(1); i <= 8; i++ {
		rows = append(rows, model.Row{"float_id": i})
	}
	got := Digest(model.Intent{QueryType: model.QueryGeneral}, rows, "")
	if !strings.Contains(got, "8 unique float(s): [1 2 3 4 5]") {
		t.Fatalf("digest = %q, want first five ids only", got)
	}
}

func TestDigestDepthAndSalinity(t *testing.T) {
	rows := []model.Row{
		{"pressure": 10.0, "salinity": 34.5},
		{"pressure": 1987.4, "salinity": 35.1},
	}
	got := Digest(model.Intent{QueryType: model.QueryProfile}, rows, "")
	if !strings.Contains(got, "Avg salinity: 34.80 PSU") {
		t.Fatalf("digest = %q, want salinity average", got)
	}
	if !strings.Contains(got, "Max depth: 1987 dbar") {
		t.Fatalf("digest = %q, want max depth", got)
	}
}

func TestEmptyDigestPerQueryType(t *testing.T) {
	fid := int64(2902115)
	rng := "Data available from January 2022 to June 2025"

	got := Digest(model.Intent{QueryType: model.QueryProximity}, nil, rng)
	if !strings.Contains(got, "No floats found near") {
		t.Fatalf("proximity empty digest = %q", got)
	}

	got = Digest(model.Intent{QueryType: model.QueryTrajectory, FloatID: &fid}, nil, rng)
	if !strings.Contains(got, "float ID 2902115") {
		t.Fatalf("trajectory empty digest = %q", got)
	}

	got = Digest(model.Intent{QueryType: model.QueryStatistic, TimeConstraint: "in 2019"}, nil, rng)
	if !strings.Contains(got, "outside our data range") || !strings.Contains(got, rng) {
		t.Fatalf("statistic empty digest = %q", got)
	}

	got = Digest(model.Intent{QueryType: model.QueryGeneral}, nil, rng)
	if !strings.Contains(got, "No matching data found") || !strings.Contains(got, rng) {
		t.Fatalf("general empty digest = %q", got)
	}
}

func TestSampleTruncates(t *testing.T) {
	long := strings.Repeat("x", 600)
	rows := []model.Row{{"note": long}, {"note": long}, {"note": long}, {"note": long}}
	s := Sample(rows)
	if len(s) > sampleMaxBytes {
		t.Fatalf("sample length = %d, want <= %d", len(s), sampleMaxBytes)
	}
	if Sample(nil) != "" {
		t.Fatal("empty rows must yield empty sample")
	}
}
