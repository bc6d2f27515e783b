// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"rentadmin/internal/models"
)

// identifierTimeLayout is the second-granularity timestamp embedded in
// backup identifiers (YYYYMMDD_HHMMSS).
const identifierTimeLayout = "20060102_150405"

// maxNamingAttempts bounds the collision-retry loop when several backups
// are created within the same second.
const maxNamingAttempts = 100

// backupIdentifier builds a snapshot identifier from a name prefix and a
// capture time. attempt > 1 appends a numeric disambiguator so identifiers
// created within the same second stay unique; "." sorts before "_" so the
// suffixed forms still order after the bare one.
func backupIdentifier(prefix string, at time.Time, attempt int) string {
	if attempt > 1 {
		return fmt.Sprintf("%s_%s_%d.html", prefix, at.Format(identifierTimeLayout), attempt)
	}
	return fmt.Sprintf("%s_%s.html", prefix, at.Format(identifierTimeLayout))
}

// BackupStore records immutable snapshots of template content in the
// template_backups table. The table is append-only: this store exposes no
// update or delete, and identifiers are generated, never reused.
type BackupStore struct {
	db *sql.DB

	// now is injectable for deterministic identifiers in tests.
	now func() time.Time
}

// NewBackupStore creates a new BackupStore backed by the given database.
func NewBackupStore(db *sql.DB) *BackupStore {
	return &BackupStore{db: db, now: time.Now}
}

// SetClock overrides the identifier clock. Test hook.
func (s *BackupStore) SetClock(now func() time.Time) {
	s.now = now
}

// Create durably stores a new snapshot of content under a generated
// identifier. On an identifier collision (two creations within the same
// second) it retries with a numeric suffix until the insert lands, so the
// caller never receives a collision. A failed insert leaves no row behind.
func (s *BackupStore) Create(ctx context.Context, content, namePrefix string) (*models.Backup, error) {
	at := s.now().UTC()

	for attempt := 1; attempt <= maxNamingAttempts; attempt++ {
		identifier := backupIdentifier(namePrefix, at, attempt)

		b := &models.Backup{}
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO template_backups (identifier, content, size_bytes)
			VALUES ($1, $2, OCTET_LENGTH($2))
			RETURNING identifier, content, size_bytes, is_default, created_at
		`, identifier, content).Scan(
			&b.Identifier, &b.Content, &b.SizeBytes, &b.IsDefault, &b.CreatedAt,
		)
		if err == nil {
			return b, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Unique violation: same-second sibling. Try the next suffix.
			continue
		}
		return nil, fmt.Errorf("create backup: %w", err)
	}

	return nil, fmt.Errorf("create backup: could not find a free identifier for prefix %q", namePrefix)
}

// List returns metadata for every backup, newest first. Content is not
// included; Get fetches it when a restore needs it.
func (s *BackupStore) List(ctx context.Context) ([]models.BackupInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT identifier, size_bytes, is_default, created_at
		FROM template_backups
		ORDER BY created_at DESC, identifier DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()

	var backups []models.BackupInfo
	for rows.Next() {
		var b models.BackupInfo
		if err := rows.Scan(&b.Identifier, &b.SizeBytes, &b.IsDefault, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

// Get retrieves a backup by identifier, content included.
// Returns nil if the identifier does not exist.
func (s *BackupStore) Get(ctx context.Context, identifier string) (*models.Backup, error) {
	b := &models.Backup{}
	err := s.db.QueryRowContext(ctx, `
		SELECT identifier, content, size_bytes, is_default, created_at
		FROM template_backups WHERE identifier = $1
	`, identifier).Scan(
		&b.Identifier, &b.Content, &b.SizeBytes, &b.IsDefault, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get backup: %w", err)
	}
	return b, nil
}
