// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// TemplateDocument is the single live contract template. Exactly one row
// exists at any time; it is seeded on first migration and only ever
// replaced through save or restore, never deleted.
type TemplateDocument struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Backup is an immutable snapshot of the contract template taken before a
// mutating operation. The identifier embeds the capture timestamp at second
// granularity (e.g. contract_template_backup_20250115_120000.html) so the
// set of backups sorts chronologically by name as well as by CreatedAt.
type Backup struct {
	Identifier string    `json:"identifier"`
	Content    string    `json:"content"`
	SizeBytes  int64     `json:"size_bytes"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// BackupInfo is the listing view of a Backup. Content is omitted — it is
// fetched lazily when a restore actually needs it.
type BackupInfo struct {
	Identifier string    `json:"identifier"`
	SizeBytes  int64     `json:"size_bytes"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// Info returns the metadata view of a backup.
func (b *Backup) Info() BackupInfo {
	return BackupInfo{
		Identifier: b.Identifier,
		SizeBytes:  b.SizeBytes,
		IsDefault:  b.IsDefault,
		CreatedAt:  b.CreatedAt,
	}
}
