package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/service"
)

type fakeService struct {
	resp       *model.Response
	answerErr  error
	trajectory *service.Trajectory
	profile    []model.Row
	questions  []string
}

func (f *fakeService) Answer(_ context.Context, q string) (*model.Response, error) {
	f.questions = append(f.questions, q)
	return f.resp, f.answerErr
}

func (f *fakeService) NearestFloats(context.Context, float64, float64, int, int, int) ([]model.Row, error) {
	return nil, nil
}

func (f *fakeService) FloatProfile(context.Context, int64, int, int) ([]model.Row, error) {
	return f.profile, nil
}

func (f *fakeService) FloatTrajectory(context.Context, int64, int, int) (*service.Trajectory, error) {
	return f.trajectory, nil
}

func (f *fakeService) Stats(context.Context) (model.Row, error) { return model.Row{}, nil }

func (f *fakeService) AvailablePeriods(context.Context) (map[string][]int, error) {
	return nil, nil
}

func (f *fakeService) Locations() []service.Location { return nil }

func (f *fakeService) Ping(context.Context) error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseQueryRequest_Valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/query",
		strings.NewReader(`{"query":"  average temperature in the arabian sea "}`))
	q, err := ParseQueryRequest(r)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if q != "average temperature in the arabian sea" {
		t.Fatalf("question=%q, want trimmed text", q)
	}
}

func TestParseQueryRequest_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":    `{"query":""}`,
		"blank":    `{"query":"   "}`,
		"not json": `average temperature`,
		"too long": `{"query":"` + strings.Repeat("a", maxQuestionLen+1) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body))
			if _, err := ParseQueryRequest(r); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHandleQuery_RoundTrip(t *testing.T) {
	fs := &fakeService{resp: &model.Response{QueryType: "Statistic", Summary: "Found 1 records."}}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query",
		strings.NewReader(`{"query":"average temperature"}`))

	HandleQuery(discardLogger(), fs)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rr.Code)
	}
	var out model.Response
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.QueryType != "Statistic" || out.Summary != "Found 1 records." {
		t.Fatalf("response=%+v", out)
	}
	if len(fs.questions) != 1 || fs.questions[0] != "average temperature" {
		t.Fatalf("service saw %v", fs.questions)
	}
}

func TestHandleQuery_BadBody(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{}`))

	HandleQuery(discardLogger(), &fakeService{})(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rr.Code)
	}
}

func TestParseNearestFloats_Validation(t *testing.T) {
	cases := []struct {
		name  string
		query string
		ok    bool
	}{
		{"valid", "lat=13.08&lon=80.27", true},
		{"valid with extras", "lat=13.08&lon=80.27&limit=10&year=2024&month=3", true},
		{"missing lat", "lon=80.27", false},
		{"missing lon", "lat=13.08", false},
		{"lat out of range", "lat=95&lon=80", false},
		{"lon out of range", "lat=13&lon=181", false},
		{"limit too big", "lat=13&lon=80&limit=500", false},
		{"bad month", "lat=13&lon=80&month=13", false},
		{"garbage year", "lat=13&lon=80&year=twenty", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/nearest_floats?"+tc.query, nil)
			_, _, _, _, _, err := ParseNearestFloats(r)
			if tc.ok && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseNearestFloats_Defaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/nearest_floats?lat=13.08&lon=80.27", nil)
	lat, lon, limit, year, month, err := ParseNearestFloats(r)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if lat != 13.08 || lon != 80.27 {
		t.Fatalf("point=(%v,%v)", lat, lon)
	}
	if limit != 4 || year != 0 || month != 0 {
		t.Fatalf("limit=%d year=%d month=%d, want defaults", limit, year, month)
	}
}

func floatIDRequest(target, id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleFloatTrajectory_NotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleFloatTrajectory(&fakeService{})(rr, floatIDRequest("/api/float_trajectory/2902115", "2902115"))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "2902115") {
		t.Fatalf("body=%q, want the float id in the error", rr.Body.String())
	}
}

func TestHandleFloatProfile_BadID(t *testing.T) {
	rr := httptest.NewRecorder()
	HandleFloatProfile(&fakeService{})(rr, floatIDRequest("/api/float_profile/abc", "abc"))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want 400", rr.Code)
	}
}
