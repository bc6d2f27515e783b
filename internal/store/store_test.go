// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"rentadmin/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "rentadmin")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "rentadmin")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanBackupsByPrefix removes test backups by identifier prefix.
// Call in t.Cleanup(). The default backup is never touched.
func cleanBackupsByPrefix(t *testing.T, db *sql.DB, prefixes ...string) {
	t.Helper()
	for _, prefix := range prefixes {
		db.Exec("DELETE FROM template_backups WHERE identifier LIKE $1 AND is_default = FALSE", prefix+"%")
	}
}

// restoreCurrentTemplate reads the current template content and registers
// a cleanup that puts it back, so tests can mutate the singleton freely.
func restoreCurrentTemplate(t *testing.T, db *sql.DB) {
	t.Helper()
	var content string
	if err := db.QueryRow("SELECT content FROM contract_template WHERE id = 1").Scan(&content); err != nil {
		t.Fatalf("read current template: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("UPDATE contract_template SET content = $1, updated_at = NOW() WHERE id = 1", content)
	})
}

// cleanLeases removes test lease rows (and their context rows) by tenant
// name. Call in t.Cleanup().
func cleanLeases(t *testing.T, db *sql.DB, tenantNames ...string) {
	t.Helper()
	for _, name := range tenantNames {
		db.Exec(`DELETE FROM leases WHERE tenant_id IN (SELECT id FROM tenants WHERE full_name = $1)`, name)
		db.Exec(`DELETE FROM tenants WHERE full_name = $1`, name)
	}
}
