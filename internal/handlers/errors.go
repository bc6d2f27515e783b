// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the template versioning and preview operations
// as a JSON API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error classifications returned to clients alongside the message, so the
// dashboard can show a precise notice instead of a generic failure.
const (
	classValidation     = "validation"
	classNotFound       = "not_found"
	classNoData         = "no_data_available"
	classTemplateSyntax = "template_syntax"
	classRenderRuntime  = "render_runtime"
	classStorage        = "storage_failure"
)

// errorBody is the JSON envelope for all error responses.
type errorBody struct {
	Error          string `json:"error"`
	Classification string `json:"classification"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError sends a classified error response.
func writeError(w http.ResponseWriter, status int, classification, message string) {
	writeJSON(w, status, errorBody{Error: message, Classification: classification})
}

// writeStorageError logs the underlying failure and sends a 500. Storage
// errors are surfaced, never retried here — the caller decides whether to
// re-run the operation from the start.
func writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("storage failure",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, classStorage, "storage failure, the operation was not completed")
}
