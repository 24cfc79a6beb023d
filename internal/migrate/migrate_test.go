package migrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/tursodatabase/go-libsql"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("libsql", "file:"+t.TempDir()+"/migrate.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoadMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER)")},
		"001_first.up.sql":    {Data: []byte("CREATE TABLE a (id INTEGER)")},
		"001_first.down.sql":  {Data: []byte("DROP TABLE a")},
		"README.md":           {Data: []byte("ignored")},
		"002_second.down.sql": {Data: []byte("DROP TABLE b")},
	}

	got, err := LoadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "DROP TABLE a", got[0].DownSQL)
	assert.Equal(t, 2, got[1].Version)
}

func TestSplitSQL(t *testing.T) {
	got := SplitSQL("CREATE TABLE a (x INT);\n\n  ;DROP TABLE b;  ")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "DROP TABLE b"}, got)
}

func TestRunner_UpAndDown(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	r, err := NewRunner(db, zerolog.Nop())
	require.NoError(t, err)
	require.GreaterOrEqual(t, r.Latest(), 1)

	version, err := r.To(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, r.Latest(), version)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fact_orders`).Scan(&n))

	current, dirty, err := r.Version(ctx)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, r.Latest(), current)

	version, err = r.To(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fact_orders`).Scan(&n)
	assert.Error(t, err, "tables must be gone after rolling back")
}

func TestRunAll_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)

	require.NoError(t, RunAll(ctx, db))
	require.NoError(t, RunAll(ctx, db))
}
