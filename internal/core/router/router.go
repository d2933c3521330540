// Package router validates HTTP input and dispatches to the service.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/core/observability"
	"github.com/kiyer/argoquery/internal/service"
)

const maxQuestionLen = 1000

// Service is the pipeline surface the HTTP handlers need.
type Service interface {
	Answer(ctx context.Context, question string) (*model.Response, error)
	NearestFloats(ctx context.Context, lat, lon float64, limit, year, month int) ([]model.Row, error)
	FloatProfile(ctx context.Context, floatID int64, year, month int) ([]model.Row, error)
	FloatTrajectory(ctx context.Context, floatID int64, year, month int) (*service.Trajectory, error)
	Stats(ctx context.Context) (model.Row, error)
	AvailablePeriods(ctx context.Context) (map[string][]int, error)
	Locations() []service.Location
	Ping(ctx context.Context) error
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with the per-route http metrics.
func instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)
		observability.ObserveHTTP(r.Method, route, sw.code, time.Since(start).Seconds())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// HandleQuery serves POST /api/query: a natural-language question in,
// a summarized result set out.
func HandleQuery(logger *slog.Logger, svc Service) http.HandlerFunc {
	return instrument("/api/query", func(w http.ResponseWriter, r *http.Request) {
		question, err := ParseQueryRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := svc.Answer(r.Context(), question)
		if err != nil {
			logger.Error("answer failed", "err", err)
			writeError(w, http.StatusInternalServerError, "query processing failed")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

// ParseQueryRequest reads the question from the JSON body.
func ParseQueryRequest(r *http.Request) (string, error) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16)).Decode(&body); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	q := strings.TrimSpace(body.Query)
	if q == "" {
		return "", errors.New("missing required field: query")
	}
	if len(q) > maxQuestionLen {
		return "", fmt.Errorf("query too long (max %d characters)", maxQuestionLen)
	}
	return q, nil
}

func HandleNearestFloats(svc Service) http.HandlerFunc {
	return instrument("/api/nearest_floats", func(w http.ResponseWriter, r *http.Request) {
		lat, lon, limit, year, month, err := ParseNearestFloats(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows, err := svc.NearestFloats(r.Context(), lat, lon, limit, year, month)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if rows == nil {
			rows = []model.Row{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"floats": rows})
	})
}

// ParseNearestFloats validates the query parameters for the
// nearest-floats lookup. lat and lon are required.
func ParseNearestFloats(r *http.Request) (lat, lon float64, limit, year, month int, err error) {
	q := r.URL.Query()
	lat, err = requiredFloat(q.Get("lat"), "lat")
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	lon, err = requiredFloat(q.Get("lon"), "lon")
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	if lat < -90 || lat > 90 {
		return 0, 0, 0, 0, 0, errors.New("lat must be in [-90,90]")
	}
	if lon < -180 || lon > 180 {
		return 0, 0, 0, 0, 0, errors.New("lon must be in [-180,180]")
	}
	limit, err = optionalInt(q.Get("limit"), "limit", 4)
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	if limit < 1 || limit > 100 {
		return 0, 0, 0, 0, 0, errors.New("limit must be in [1,100]")
	}
	year, month, err = parsePeriod(q.Get("year"), q.Get("month"))
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}
	return lat, lon, limit, year, month, nil
}

func HandleFloatProfile(svc Service) http.HandlerFunc {
	return instrument("/api/float_profile", func(w http.ResponseWriter, r *http.Request) {
		id, year, month, err := parseFloatTarget(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rows, err := svc.FloatProfile(r.Context(), id, year, month)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if len(rows) == 0 {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no profile data found for float %d", id))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"float_id": id, "profile": rows})
	})
}

func HandleFloatTrajectory(svc Service) http.HandlerFunc {
	return instrument("/api/float_trajectory", func(w http.ResponseWriter, r *http.Request) {
		id, year, month, err := parseFloatTarget(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		tr, err := svc.FloatTrajectory(r.Context(), id, year, month)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if tr == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no trajectory found for float %d", id))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"float_id": id, "trajectory": tr})
	})
}

func HandleStats(svc Service) http.HandlerFunc {
	return instrument("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "stats unavailable")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})
}

func HandleAvailablePeriods(svc Service) http.HandlerFunc {
	return instrument("/api/available_periods", func(w http.ResponseWriter, r *http.Request) {
		periods, err := svc.AvailablePeriods(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "periods unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"periods": periods})
	})
}

func HandleLocations(svc Service) http.HandlerFunc {
	return instrument("/api/locations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"locations": svc.Locations()})
	})
}

// HandleStatus reports whether the database is reachable.
func HandleStatus(svc Service) http.HandlerFunc {
	return instrument("/api/status", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": "disconnected",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"database": "connected",
		})
	})
}

func parseFloatTarget(r *http.Request) (id int64, year, month int, err error) {
	raw := chi.URLParam(r, "id")
	id, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid float id %q", raw)
	}
	q := r.URL.Query()
	year, month, err = parsePeriod(q.Get("year"), q.Get("month"))
	if err != nil {
		return 0, 0, 0, err
	}
	return id, year, month, nil
}

func parsePeriod(rawYear, rawMonth string) (year, month int, err error) {
	year, err = optionalInt(rawYear, "year", 0)
	if err != nil {
		return 0, 0, err
	}
	month, err = optionalInt(rawMonth, "month", 0)
	if err != nil {
		return 0, 0, err
	}
	if month != 0 && (month < 1 || month > 12) {
		return 0, 0, errors.New("month must be in [1,12]")
	}
	return year, month, nil
}

func requiredFloat(raw, name string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter: %s", name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func optionalInt(raw, name string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
