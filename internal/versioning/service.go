// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package versioning implements the contract-template use cases: read the
// current template, save new content, list backups, and restore a backup.
// Every mutation snapshots the prior state before writing, so no save or
// restore can destroy content that has no recoverable backup.
package versioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"rentadmin/internal/models"
)

// Identifier prefixes. Safety backups taken before a restore use a
// distinct prefix so they are visually distinguishable in listings.
const (
	savePrefix    = "contract_template_backup"
	restorePrefix = "contract_template_before_restore"
)

var (
	// ErrEmptyContent rejects a save whose content is empty or whitespace-only.
	ErrEmptyContent = errors.New("template content must not be empty")

	// ErrBackupNotFound reports an unknown backup identifier.
	ErrBackupNotFound = errors.New("backup not found")
)

// TemplateRepository holds the single current template document.
type TemplateRepository interface {
	GetCurrent(ctx context.Context) (*models.TemplateDocument, error)
	SetCurrent(ctx context.Context, content string) error
}

// BackupStore records immutable snapshots of template content.
// Get returns (nil, nil) for an unknown identifier.
type BackupStore interface {
	Create(ctx context.Context, content, namePrefix string) (*models.Backup, error)
	List(ctx context.Context) ([]models.BackupInfo, error)
	Get(ctx context.Context, identifier string) (*models.Backup, error)
}

// SaveResult reports a completed save.
type SaveResult struct {
	Message          string `json:"message"`
	BackupIdentifier string `json:"backup_identifier"`
	BackupReference  string `json:"backup_reference"`
}

// RestoreResult reports a completed restore.
type RestoreResult struct {
	Message                string `json:"message"`
	SafetyBackupIdentifier string `json:"safety_backup_identifier"`
}

// Service composes the template repository and the backup store. The
// mutex serializes the backup-then-replace sequence: two concurrent
// mutations must not interleave between snapshotting the current content
// and overwriting it.
type Service struct {
	templates TemplateRepository
	backups   BackupStore

	mu sync.Mutex
}

// New creates a versioning service over the given repository and backup store.
func New(templates TemplateRepository, backups BackupStore) *Service {
	return &Service{templates: templates, backups: backups}
}

// GetCurrent returns the current template document. Read-only.
func (s *Service) GetCurrent(ctx context.Context) (*models.TemplateDocument, error) {
	return s.templates.GetCurrent(ctx)
}

// ListBackups returns backup metadata, newest first. Read-only.
func (s *Service) ListBackups(ctx context.Context) ([]models.BackupInfo, error) {
	return s.backups.List(ctx)
}

// GetBackup returns a single backup, content included.
// Returns ErrBackupNotFound for an unknown identifier.
func (s *Service) GetBackup(ctx context.Context, identifier string) (*models.Backup, error) {
	b, err := s.backups.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackupNotFound, identifier)
	}
	return b, nil
}

// Save replaces the current template with newContent after snapshotting
// the prior content. The backup strictly precedes the write: if the
// backup fails, the current template is untouched; if the write fails
// after the backup landed, the backup stays valid and the operation
// reports the failure. Each call creates a new backup even when the
// content is unchanged — the invariant is "never lose a prior state",
// not "avoid redundant snapshots".
func (s *Service) Save(ctx context.Context, newContent string) (*SaveResult, error) {
	if strings.TrimSpace(newContent) == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Cancellation is only honored up to this point. Once the backup is
	// underway the sequence runs to completion so a caller hanging up
	// cannot strand a backup without its matching write.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	current, err := s.templates.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("read current template: %w", err)
	}

	backup, err := s.backups.Create(ctx, current.Content, savePrefix)
	if err != nil {
		return nil, fmt.Errorf("backup current template: %w", err)
	}

	if err := s.templates.SetCurrent(ctx, newContent); err != nil {
		// The snapshot already landed; nothing is lost, the template
		// just did not advance.
		return nil, fmt.Errorf("replace template after backup %s: %w", backup.Identifier, err)
	}

	slog.Info("template saved",
		"backup", backup.Identifier,
		"size_bytes", len(newContent),
	)

	return &SaveResult{
		Message:          "Template saved. Previous version backed up as " + backup.Identifier + ".",
		BackupIdentifier: backup.Identifier,
		BackupReference:  "/api/template/backups/" + backup.Identifier,
	}, nil
}

// Restore replaces the current template with the content of the backup
// named by identifier, after snapshotting the current content as a safety
// backup under the before-restore prefix. Restoring the default backup is
// legal and behaves like any other restore. The safety backup makes every
// restore itself undoable.
func (s *Service) Restore(ctx context.Context, identifier string) (*RestoreResult, error) {
	target, err := s.GetBackup(ctx, identifier)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Same cancellation cutoff as Save.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	current, err := s.templates.GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("read current template: %w", err)
	}

	safety, err := s.backups.Create(ctx, current.Content, restorePrefix)
	if err != nil {
		return nil, fmt.Errorf("safety backup before restore: %w", err)
	}

	if err := s.templates.SetCurrent(ctx, target.Content); err != nil {
		return nil, fmt.Errorf("replace template after safety backup %s: %w", safety.Identifier, err)
	}

	slog.Info("template restored",
		"from", target.Identifier,
		"safety_backup", safety.Identifier,
	)

	return &RestoreResult{
		Message:                "Backup " + target.Identifier + " restored. Replaced version kept as " + safety.Identifier + ".",
		SafetyBackupIdentifier: safety.Identifier,
	}, nil
}
