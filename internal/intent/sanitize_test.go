package intent

import (
	"reflect"
	"testing"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/gazetteer"
	"github.com/kiyer/argoquery/internal/schema"
)

func testSnapshot() schema.Snapshot {
	return schema.NewSnapshot([]string{
		"float_id", "timestamp", "latitude", "longitude",
		"temperature", "salinity", "dissolved_oxygen", "pressure",
	})
}

func TestSanitizeDefaults(t *testing.T) {
	got := Sanitize(nil, "tell me something", testSnapshot(), gazetteer.New())

	if got.QueryType != model.QueryGeneral {
		t.Fatalf("query type = %q, want General", got.QueryType)
	}
	if got.DistanceKm != defaultDistanceKm {
		t.Fatalf("distance = %d, want %d", got.DistanceKm, defaultDistanceKm)
	}
	if got.Limit != defaultBulkLimit {
		t.Fatalf("limit = %d, want %d", got.Limit, defaultBulkLimit)
	}
	if got.Aggregation != "avg" {
		t.Fatalf("aggregation = %q, want avg", got.Aggregation)
	}
	if len(got.Metrics) == 0 {
		t.Fatal("expected fallback metrics, got none")
	}
	for _, m := range got.Metrics {
		if _, id := identityColumns[m]; id {
			t.Fatalf("identity column %q offered as metric", m)
		}
	}
}

func TestSanitizeQueryTypeAliases(t *testing.T) {
	cases := map[string]model.QueryType{
		"Path":        model.QueryTrajectory,
		"timeseries":  model.QueryTimeSeries,
		"Time Series": model.QueryTimeSeries,
		"statistics":  model.QueryStatistic,
		"bogus":       model.QueryGeneral,
		"":            model.QueryGeneral,
	}
	for in, want := range cases {
		got := Sanitize(model.RawIntent{"query_type": in}, "", testSnapshot(), gazetteer.New())
		if got.QueryType != want {
			t.Fatalf("query_type %q -> %q, want %q", in, got.QueryType, want)
		}
	}
}

func TestSanitizeFloatPrefixLocation(t *testing.T) {
	raw := model.RawIntent{
		"query_type":    "Trajectory",
		"location_name": "float 2902115",
	}
	got := Sanitize(raw, "show the path of float 2902115", testSnapshot(), gazetteer.New())

	if got.FloatID == nil || *got.FloatID != 2902115 {
		t.Fatalf("float id = %v, want 2902115", got.FloatID)
	}
	if got.LocationName != "" {
		t.Fatalf("location name = %q, want empty", got.LocationName)
	}
	if got.Location != nil {
		t.Fatal("location bounds should be nil for a float-id pseudo location")
	}
}

func TestSanitizeMetricsSchemaFilter(t *testing.T) {
	raw := model.RawIntent{
		"query_type": "Statistic",
		"metrics":    []any{"Temperature", "dissolved oxygen", "chlorophyll", "temperature", "DROP TABLE argo_data"},
	}
	got := Sanitize(raw, "", testSnapshot(), gazetteer.New())

	want := []string{"temperature", "dissolved_oxygen"}
	if !reflect.DeepEqual(got.Metrics, want) {
		t.Fatalf("metrics = %v, want %v", got.Metrics, want)
	}
}

func TestSanitizeMetricsFallbackChain(t *testing.T) {
	snap := schema.NewSnapshot([]string{"float_id", "timestamp", "latitude", "longitude"})
	got := Sanitize(model.RawIntent{"metrics": []any{"temperature"}}, "", snap, gazetteer.New())
	// no non-identity columns, no temperature column: first column wins
	if len(got.Metrics) != 1 || got.Metrics[0] != "float_id" {
		t.Fatalf("metrics = %v, want [float_id]", got.Metrics)
	}
}

func TestSanitizeCoordinateAssist(t *testing.T) {
	got := Sanitize(
		model.RawIntent{"query_type": "General"},
		"nearest floats at 10.5, -45.25",
		testSnapshot(), gazetteer.New(),
	)
	if got.QueryType != model.QueryProximity {
		t.Fatalf("query type = %q, want Proximity after coordinate assist", got.QueryType)
	}
	if got.Latitude == nil || *got.Latitude != 10.5 {
		t.Fatalf("latitude = %v, want 10.5", got.Latitude)
	}
	if got.Longitude == nil || *got.Longitude != -45.25 {
		t.Fatalf("longitude = %v, want -45.25", got.Longitude)
	}
	if got.Limit != defaultListLimit {
		t.Fatalf("limit = %d, want %d", got.Limit, defaultListLimit)
	}
}

func TestSanitizeNearestNLimit(t *testing.T) {
	got := Sanitize(
		model.RawIntent{"query_type": "Proximity", "location_name": "chennai"},
		"find the nearest 3 floats to chennai",
		testSnapshot(), gazetteer.New(),
	)
	if got.Limit != 3 {
		t.Fatalf("limit = %d, want 3", got.Limit)
	}
	if got.Latitude == nil || got.Longitude == nil {
		t.Fatal("expected centroid resolution for chennai")
	}
}

func TestSanitizeProximityCentroid(t *testing.T) {
	got := Sanitize(
		model.RawIntent{"query_type": "Proximity", "location_name": "Chennai"},
		"", testSnapshot(), gazetteer.New(),
	)
	if got.Latitude == nil || got.Longitude == nil {
		t.Fatal("expected centroid for chennai")
	}
	if *got.Latitude != 13.08 || *got.Longitude != 80.27 {
		t.Fatalf("centroid = (%v, %v), want (13.08, 80.27)", *got.Latitude, *got.Longitude)
	}
	if got.Location == nil {
		t.Fatal("expected bounds attached for a known name")
	}
}

func TestSanitizeUnknownLocationKeepsName(t *testing.T) {
	got := Sanitize(
		model.RawIntent{"query_type": "Statistic", "location_name": "Atlantis"},
		"", testSnapshot(), gazetteer.New(),
	)
	if got.LocationName != "atlantis" {
		t.Fatalf("location name = %q, want atlantis", got.LocationName)
	}
	if got.Location != nil {
		t.Fatal("unknown name must not produce bounds")
	}
}

func TestSanitizeNumericCoercion(t *testing.T) {
	raw := model.RawIntent{
		"query_type":  "Proximity",
		"distance_km": "within 700 km",
		"float_id":    "2902746",
		"month":       float64(13),
		"latitude":    "95", // out of range, dropped
	}
	got := Sanitize(raw, "", testSnapshot(), gazetteer.New())

	if got.DistanceKm != 700 {
		t.Fatalf("distance = %d, want 700", got.DistanceKm)
	}
	if got.FloatID == nil || *got.FloatID != 2902746 {
		t.Fatalf("float id = %v, want 2902746", got.FloatID)
	}
	if got.Month != 0 {
		t.Fatalf("month = %d, want 0 for out-of-range value", got.Month)
	}
	if got.Latitude != nil {
		t.Fatalf("latitude = %v, want nil for out-of-range value", *got.Latitude)
	}
}

func TestSanitizeFloatIDFromQuestion(t *testing.T) {
	got := Sanitize(
		model.RawIntent{"query_type": "Profile"},
		"show the depth profile for float #2902746",
		testSnapshot(), gazetteer.New(),
	)
	if got.FloatID == nil || *got.FloatID != 2902746 {
		t.Fatalf("float id = %v, want 2902746", got.FloatID)
	}
}
