// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"rentadmin/internal/handlers"
	"rentadmin/internal/middleware"
	"rentadmin/internal/models"
	"rentadmin/internal/versioning"
)

type stubRepo struct{ content string }

func (s *stubRepo) GetCurrent(ctx context.Context) (*models.TemplateDocument, error) {
	return &models.TemplateDocument{Content: s.content, UpdatedAt: time.Now()}, nil
}

func (s *stubRepo) SetCurrent(ctx context.Context, content string) error {
	s.content = content
	return nil
}

type stubBackups struct{}

func (stubBackups) Create(ctx context.Context, content, namePrefix string) (*models.Backup, error) {
	return &models.Backup{Identifier: namePrefix + "_20250115_120000.html", Content: content, CreatedAt: time.Now()}, nil
}

func (stubBackups) List(ctx context.Context) ([]models.BackupInfo, error) {
	return []models.BackupInfo{}, nil
}

func (stubBackups) Get(ctx context.Context, identifier string) (*models.Backup, error) {
	return nil, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, templateText string, ref *uuid.UUID) (string, error) {
	return templateText, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := versioning.New(&stubRepo{content: "<h1>Contract</h1>"}, stubBackups{})
	tmpl := handlers.NewTemplate(svc, stubRenderer{}, nil)
	metrics := middleware.NewMetrics(prometheus.NewRegistry())
	limiter := middleware.NewRateLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)
	return New(tmpl, metrics, limiter)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRoutes(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/health", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/api/template/", http.StatusOK},
		{"GET", "/api/template/backups", http.StatusOK},
		{"GET", "/api/template/backups/contract_template_backup_19990101_000000.html", http.StatusNotFound},
		{"POST", "/api/template/", http.StatusMethodNotAllowed},
		{"GET", "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.want {
			t.Errorf("%s %s: got %d, want %d", tt.method, tt.path, w.Code, tt.want)
		}
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestMutatingRoutesRateLimited(t *testing.T) {
	svc := versioning.New(&stubRepo{content: "current"}, stubBackups{})
	tmpl := handlers.NewTemplate(svc, stubRenderer{}, nil)
	metrics := middleware.NewMetrics(prometheus.NewRegistry())
	limiter := middleware.NewRateLimiter(1, time.Minute)
	t.Cleanup(limiter.Stop)
	router := New(tmpl, metrics, limiter)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/template/preview", nil))
	if w.Code == http.StatusTooManyRequests {
		t.Fatalf("first request throttled: %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/template/preview", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", w.Code)
	}

	// Reads bypass the limiter entirely.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/template/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("read after throttle: got %d, want 200", w.Code)
	}
}
