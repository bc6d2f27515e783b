// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"rentadmin/internal/models"
)

// TemplateStore holds the single current contract template. The backing
// table is pinned to one row by a CHECK constraint, so the document is a
// true singleton: it exists from the first migration on and is only ever
// replaced, never deleted.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// GetCurrent returns the current template document. The row is seeded by
// migration, so a missing row indicates a broken schema rather than an
// empty state.
func (s *TemplateStore) GetCurrent(ctx context.Context) (*models.TemplateDocument, error) {
	doc := &models.TemplateDocument{}
	err := s.db.QueryRowContext(ctx, `
		SELECT content, updated_at FROM contract_template WHERE id = 1
	`).Scan(&doc.Content, &doc.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get current template: %w", err)
	}
	return doc, nil
}

// SetCurrent replaces the current template content. A single UPDATE
// statement keeps the replacement atomic: concurrent writers serialize on
// the row lock and a reader never observes a half-written value.
func (s *TemplateStore) SetCurrent(ctx context.Context, content string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE contract_template SET content = $1, updated_at = NOW() WHERE id = 1
	`, content)
	if err != nil {
		return fmt.Errorf("set current template: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set current template: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set current template: singleton row missing")
	}
	return nil
}
