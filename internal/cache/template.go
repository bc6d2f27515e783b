// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// template.go provides a Valkey-backed cache for the two read endpoints of
// the template service: the current template content and the backup
// listing. The two entries are dependent resources — a save or restore
// changes both — so they are always invalidated together. Previews never
// touch this cache: rendering has no persisted side effects.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// currentKey holds the current template content.
	currentKey = "tmpl:current"

	// backupsKey holds the JSON-encoded backup listing.
	backupsKey = "tmpl:backups"

	// DefaultTemplateTTL bounds staleness if an invalidation is ever lost.
	DefaultTemplateTTL = 10 * time.Minute
)

// TemplateCache caches the current template and the backup listing in Valkey.
type TemplateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCache creates a template cache backed by the given Valkey client.
func NewTemplateCache(client *redis.Client, ttl time.Duration) *TemplateCache {
	if ttl == 0 {
		ttl = DefaultTemplateTTL
	}
	return &TemplateCache{client: client, ttl: ttl}
}

// GetCurrent retrieves the cached template content. Returns "" and false on miss.
func (tc *TemplateCache) GetCurrent(ctx context.Context) (string, bool) {
	val, err := tc.client.Get(ctx, currentKey).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("template cache get error", "key", currentKey, "error", err)
		return "", false
	}
	return val, true
}

// SetCurrent stores the template content with the configured TTL.
func (tc *TemplateCache) SetCurrent(ctx context.Context, content string) {
	if err := tc.client.Set(ctx, currentKey, content, tc.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "key", currentKey, "error", err)
	}
}

// GetBackupListing retrieves the cached listing JSON. Returns nil and false on miss.
func (tc *TemplateCache) GetBackupListing(ctx context.Context) ([]byte, bool) {
	val, err := tc.client.Get(ctx, backupsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("template cache get error", "key", backupsKey, "error", err)
		return nil, false
	}
	return val, true
}

// SetBackupListing stores the listing JSON with the configured TTL.
func (tc *TemplateCache) SetBackupListing(ctx context.Context, listing []byte) {
	if err := tc.client.Set(ctx, backupsKey, listing, tc.ttl).Err(); err != nil {
		slog.Warn("template cache set error", "key", backupsKey, "error", err)
	}
}

// Invalidate drops both entries. Called after every successful save or
// restore; there is no required ordering between the two deletions, they
// just both have to be gone before the next read.
func (tc *TemplateCache) Invalidate(ctx context.Context) {
	if err := tc.client.Del(ctx, currentKey, backupsKey).Err(); err != nil {
		slog.Warn("template cache invalidate error", "error", err)
		return
	}
	slog.Debug("template cache invalidated")
}
