// Package server serves the front-end assets and dataset files.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JeromeFabre77/SpotWork/internal/core/config"
	"github.com/JeromeFabre77/SpotWork/internal/core/health"
	"github.com/JeromeFabre77/SpotWork/internal/core/middleware"
)

// Run serves static assets, the GeoJSON datasets, health and metrics
// until the context is canceled. Filtering stays client-side; this
// server ships files only.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	r := chi.NewRouter()
	r.Use(middleware.Recover())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	r.Get("/healthz", health.Liveness())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Handle("/data/*", http.StripPrefix("/data/", http.FileServer(http.Dir(cfg.DataDir))))
	r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))

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
