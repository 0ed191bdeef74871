// Package api exposes the catalog over HTTP. Handlers translate requests
// into commands and queries, route them through the bus and render the JSON
// envelope; everything else lives behind the bus.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"datacatalog/internal/bus"
	"datacatalog/internal/config"
	"datacatalog/internal/httpx"
)

func NewRouter(b *bus.Bus, db *pgxpool.Pool, cfg config.Config) http.Handler {
	datasets := NewDatasetHandler(b)
	tags := NewTagHandler(b)
	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(httpx.SecurityHeadersMiddleware(cfg.EnableHSTS))
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(rateLimit.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Route("/datasets", func(r chi.Router) {
		r.Get("/", datasets.List)
		r.Post("/", datasets.Create)
		r.Get("/filters", datasets.Filters)
		r.Get("/{id}", datasets.GetByID)
		r.Put("/{id}", datasets.Update)
		r.Delete("/{id}", datasets.Delete)
	})

	r.Route("/tags", func(r chi.Router) {
		r.Get("/", tags.List)
		r.Post("/", tags.Create)
	})

	return r
}
