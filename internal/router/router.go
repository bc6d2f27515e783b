// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// contract template service. Read routes are unthrottled; the three
// mutating-or-expensive routes (save, restore, preview) sit behind a
// per-client rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentadmin/internal/handlers"
	"rentadmin/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tmpl *handlers.Template, metrics *middleware.Metrics, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(metrics.Middleware)

	// Health check and metrics — no throttling.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/template", func(r chi.Router) {
		r.Get("/", tmpl.GetCurrent)
		r.Get("/backups", tmpl.ListBackups)
		r.Get("/backups/{identifier}", tmpl.GetBackup)

		// Mutations and preview rendering are throttled per client.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Put("/", tmpl.Save)
			r.Post("/restore", tmpl.Restore)
			r.Post("/preview", tmpl.Preview)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
