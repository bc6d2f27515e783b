// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestTemplateStoreGetCurrent(t *testing.T) {
	db := testDB(t)
	s := NewTemplateStore(db)

	doc, err := s.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if doc.Content == "" {
		t.Error("seeded template content is empty")
	}
	if doc.UpdatedAt.IsZero() {
		t.Error("updated_at is zero")
	}
}

func TestTemplateStoreSetCurrent(t *testing.T) {
	db := testDB(t)
	restoreCurrentTemplate(t, db)
	s := NewTemplateStore(db)
	ctx := context.Background()

	content := "<html>set-current " + uuid.NewString()[:8] + "</html>"
	if err := s.SetCurrent(ctx, content); err != nil {
		t.Fatalf("SetCurrent: %v", err)
	}

	doc, err := s.GetCurrent(ctx)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if doc.Content != content {
		t.Errorf("content: got %q, want %q", doc.Content, content)
	}
}
