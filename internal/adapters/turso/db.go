package turso

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// NewDB opens the libsql database at url. Remote libsql:// urls take an
// auth token; local file: urls ignore it.
func NewDB(url, authToken string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("libsql url is required")
	}

	connStr := url
	if authToken != "" && !strings.HasPrefix(url, "file:") {
		connStr = url + "?authToken=" + authToken
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
