// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"rentadmin/internal/models"
)

// defaultBackupName is the fixed identifier of the shipped-template backup.
const defaultBackupName = "contract_template_default.html"

// FSBackupStore keeps template snapshots as individual files in a single
// directory, one file per backup, named by identifier. Writes go through
// an atomic rename so a crashed or failed Create never leaves a partial
// file visible to List.
type FSBackupStore struct {
	dir string
	now func() time.Time
}

// NewFSBackupStore creates the snapshot directory if needed and returns a
// store rooted there.
func NewFSBackupStore(dir string) (*FSBackupStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &FSBackupStore{dir: dir, now: time.Now}, nil
}

// SetClock overrides the identifier clock. Test hook.
func (s *FSBackupStore) SetClock(now func() time.Time) {
	s.now = now
}

// EnsureDefault writes the default backup if it does not exist yet.
// Called once at startup with the shipped template content.
func (s *FSBackupStore) EnsureDefault(ctx context.Context, content string) error {
	path := filepath.Join(s.dir, defaultBackupName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat default backup: %w", err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write default backup: %w", err)
	}
	return nil
}

// Create durably stores a new snapshot as a file. Same-second collisions
// get a numeric suffix, mirroring the database-backed store.
func (s *FSBackupStore) Create(ctx context.Context, content, namePrefix string) (*models.Backup, error) {
	at := s.now().UTC()

	for attempt := 1; attempt <= maxNamingAttempts; attempt++ {
		identifier := backupIdentifier(namePrefix, at, attempt)
		path := filepath.Join(s.dir, identifier)

		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("create backup: %w", err)
		}

		if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}

		return &models.Backup{
			Identifier: identifier,
			Content:    content,
			SizeBytes:  info.Size(),
			IsDefault:  identifier == defaultBackupName,
			CreatedAt:  info.ModTime(),
		}, nil
	}

	return nil, fmt.Errorf("create backup: could not find a free identifier for prefix %q", namePrefix)
}

// List returns metadata for every snapshot file, newest first.
func (s *FSBackupStore) List(ctx context.Context) ([]models.BackupInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	var backups []models.BackupInfo
	for _, e := range entries {
		// Interrupted atomic writes leave temp files behind, named with
		// the target identifier plus a random suffix. Only completed
		// snapshots carry the .html extension, so anything else stays
		// invisible here.
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("list backups: %w", err)
		}
		backups = append(backups, models.BackupInfo{
			Identifier: e.Name(),
			SizeBytes:  info.Size(),
			IsDefault:  e.Name() == defaultBackupName,
			CreatedAt:  info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return backups[i].Identifier > backups[j].Identifier
	})

	return backups, nil
}

// Get reads a snapshot file by identifier. Returns nil if it does not
// exist. Identifiers are generated names, never caller paths: the
// base-name check keeps a crafted identifier inside the snapshot dir, and
// the extension check refuses leftovers of interrupted writes.
func (s *FSBackupStore) Get(ctx context.Context, identifier string) (*models.Backup, error) {
	if identifier != filepath.Base(identifier) || !strings.HasSuffix(identifier, ".html") {
		return nil, nil
	}
	path := filepath.Join(s.dir, identifier)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get backup: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("get backup: %w", err)
	}

	return &models.Backup{
		Identifier: identifier,
		Content:    string(data),
		SizeBytes:  info.Size(),
		IsDefault:  identifier == defaultBackupName,
		CreatedAt:  info.ModTime(),
	}, nil
}
