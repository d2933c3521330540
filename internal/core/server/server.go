package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiyer/argoquery/internal/core/config"
	"github.com/kiyer/argoquery/internal/core/health"
	middleware "github.com/kiyer/argoquery/internal/core/middleware"
	"github.com/kiyer/argoquery/internal/core/router"
)

// sets up http and starts serving
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, svc router.Service, ready health.ReadinessReporter) error {
	r := chi.NewRouter()
	r.Use(middleware.Recover())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(ready))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Post("/api/query", router.HandleQuery(logger, svc))
	r.Get("/api/status", router.HandleStatus(svc))
	r.Get("/api/stats", router.HandleStats(svc))
	r.Get("/api/locations", router.HandleLocations(svc))
	r.Get("/api/available_periods", router.HandleAvailablePeriods(svc))
	r.Get("/api/nearest_floats", router.HandleNearestFloats(svc))
	r.Get("/api/float_profile/{id}", router.HandleFloatProfile(svc))
	r.Get("/api/float_trajectory/{id}", router.HandleFloatTrajectory(svc))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
