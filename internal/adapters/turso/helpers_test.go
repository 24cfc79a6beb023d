package turso_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/emiliopalmerini/execdash/internal/adapters/turso"
	"github.com/emiliopalmerini/execdash/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := turso.NewDB("file:"+t.TempDir()+"/warehouse.db", "")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err := migrate.RunAll(context.Background(), db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
