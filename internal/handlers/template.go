// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"rentadmin/internal/render"
	"rentadmin/internal/versioning"
)

// maxBodyBytes bounds request bodies; templates are large but not unbounded.
const maxBodyBytes = 2 << 20

// Cache holds the two read results of the template endpoints: the current
// content and the backup listing. Implemented by cache.TemplateCache.
type Cache interface {
	GetCurrent(ctx context.Context) (string, bool)
	SetCurrent(ctx context.Context, content string)
	GetBackupListing(ctx context.Context) ([]byte, bool)
	SetBackupListing(ctx context.Context, listing []byte)
	Invalidate(ctx context.Context)
}

// Template handles the contract-template endpoints. Both cache entries are
// invalidated after every successful save or restore, and previews never
// touch them. A nil cache disables caching.
type Template struct {
	service  *versioning.Service
	renderer render.Renderer
	cache    Cache
}

// NewTemplate creates the template handler group.
func NewTemplate(service *versioning.Service, renderer render.Renderer, templateCache Cache) *Template {
	return &Template{service: service, renderer: renderer, cache: templateCache}
}

// currentResponse is the Get-current payload.
type currentResponse struct {
	Content string `json:"content"`
}

// backupEntry is one row of the listing payload.
type backupEntry struct {
	Identifier string    `json:"identifier"`
	Reference  string    `json:"reference"`
	SizeBytes  int64     `json:"size_bytes"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetCurrent returns the current template content.
func (h *Template) GetCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		if content, ok := h.cache.GetCurrent(ctx); ok {
			writeJSON(w, http.StatusOK, currentResponse{Content: content})
			return
		}
	}

	doc, err := h.service.GetCurrent(ctx)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}

	if h.cache != nil {
		h.cache.SetCurrent(ctx, doc.Content)
	}
	writeJSON(w, http.StatusOK, currentResponse{Content: doc.Content})
}

// Save replaces the current template, backing up the prior content first.
func (h *Template) Save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.service.Save(r.Context(), req.Content)
	switch {
	case errors.Is(err, versioning.ErrEmptyContent):
		writeError(w, http.StatusUnprocessableEntity, classValidation, "template content must not be empty")
		return
	case err != nil:
		writeStorageError(w, r, err)
		return
	}

	if h.cache != nil {
		// The save committed even if the client hung up mid-request (the
		// service detaches from cancellation once the backup is underway),
		// so the invalidation must not be skipped on a canceled context.
		h.cache.Invalidate(context.WithoutCancel(r.Context()))
	}
	writeJSON(w, http.StatusOK, result)
}

// ListBackups returns backup metadata, newest first.
func (h *Template) ListBackups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		if listing, ok := h.cache.GetBackupListing(ctx); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(listing)
			return
		}
	}

	backups, err := h.service.ListBackups(ctx)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}

	entries := make([]backupEntry, 0, len(backups))
	for _, b := range backups {
		entries = append(entries, backupEntry{
			Identifier: b.Identifier,
			Reference:  "/api/template/backups/" + b.Identifier,
			SizeBytes:  b.SizeBytes,
			IsDefault:  b.IsDefault,
			CreatedAt:  b.CreatedAt.UTC(),
		})
	}

	body, err := json.Marshal(entries)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}

	if h.cache != nil {
		h.cache.SetBackupListing(ctx, body)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// GetBackup returns a single backup, content included.
func (h *Template) GetBackup(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	backup, err := h.service.GetBackup(r.Context(), identifier)
	switch {
	case errors.Is(err, versioning.ErrBackupNotFound):
		writeError(w, http.StatusNotFound, classNotFound, "backup "+identifier+" does not exist")
		return
	case err != nil:
		writeStorageError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, backup)
}

// Restore replaces the current template with a backup's content, keeping
// a safety backup of what was current.
func (h *Template) Restore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BackupIdentifier string `json:"backup_identifier"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BackupIdentifier == "" {
		writeError(w, http.StatusUnprocessableEntity, classValidation, "backup_identifier is required")
		return
	}

	result, err := h.service.Restore(r.Context(), req.BackupIdentifier)
	switch {
	case errors.Is(err, versioning.ErrBackupNotFound):
		writeError(w, http.StatusNotFound, classNotFound, "backup "+req.BackupIdentifier+" does not exist")
		return
	case err != nil:
		writeStorageError(w, r, err)
		return
	}

	if h.cache != nil {
		// Same as Save: the restore may have committed on a context the
		// client already canceled.
		h.cache.Invalidate(context.WithoutCancel(r.Context()))
	}
	writeJSON(w, http.StatusOK, result)
}

// previewResponse is the preview payload.
type previewResponse struct {
	HTML string `json:"html"`
}

// Preview renders caller-supplied template text against lease data.
// Read-only: the working draft may differ from the persisted template and
// nothing here changes any persisted state or cache entry.
func (h *Template) Preview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateText string  `json:"template_text"`
		LeaseID      *string `json:"lease_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	var ref *uuid.UUID
	if req.LeaseID != nil && *req.LeaseID != "" {
		id, err := uuid.Parse(*req.LeaseID)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, classValidation, "lease_id is not a valid UUID")
			return
		}
		ref = &id
	}

	html, err := h.renderer.Render(r.Context(), req.TemplateText, ref)
	if err != nil {
		var synErr *render.SyntaxError
		var runErr *render.RuntimeError
		switch {
		case errors.Is(err, render.ErrNoData):
			writeError(w, http.StatusUnprocessableEntity, classNoData, "no lease data available to render against")
		case errors.As(err, &synErr):
			writeError(w, http.StatusUnprocessableEntity, classTemplateSyntax, synErr.Error())
		case errors.As(err, &runErr):
			writeError(w, http.StatusUnprocessableEntity, classRenderRuntime, runErr.Error())
		default:
			writeStorageError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, previewResponse{HTML: html})
}

// decodeBody decodes a JSON request body into dst, writing a validation
// error and returning false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, classValidation, "invalid JSON body")
		return false
	}
	return true
}
