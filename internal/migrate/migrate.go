// Package migrate applies the embedded warehouse schema migrations.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/execdash/migrations"
)

// Migration is a single schema migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// LoadMigrations reads the migration files of fsys sorted by version.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	var result []Migration

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(path.Base(p))
		if matches == nil {
			return nil
		}
		version, _ := strconv.Atoi(matches[1])

		upSQL, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		downSQL, _ := fs.ReadFile(fsys, path.Join(path.Dir(p), fmt.Sprintf("%s_%s.down.sql", matches[1], matches[2])))

		result = append(result, Migration{
			Version: version,
			Name:    matches[2],
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// Runner moves a database between schema versions.
type Runner struct {
	db         *sql.DB
	log        zerolog.Logger
	migrations []Migration
}

// NewRunner creates a Runner over the embedded warehouse migrations.
func NewRunner(db *sql.DB, log zerolog.Logger) (*Runner, error) {
	all, err := LoadMigrations(migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}
	return &Runner{db: db, log: log, migrations: all}, nil
}

// Latest returns the highest known migration version.
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

func (r *Runner) ensureTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// Version returns the current schema version and dirty state.
func (r *Runner) Version(ctx context.Context) (int, bool, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, false, fmt.Errorf("creating migrations table: %w", err)
	}

	var version, dirty int
	err := r.db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty == 1, nil
}

func (r *Runner) setVersion(ctx context.Context, version int, dirty bool) error {
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version == 0 && !dirty {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}

// To migrates up or down to target. A negative target means the latest version.
func (r *Runner) To(ctx context.Context, target int) (int, error) {
	current, dirty, err := r.Version(ctx)
	if err != nil {
		return 0, err
	}
	if dirty {
		return current, fmt.Errorf("database is in dirty state at version %d", current)
	}
	if target < 0 {
		target = r.Latest()
	}

	switch {
	case target > current:
		for _, m := range r.migrations {
			if m.Version <= current || m.Version > target {
				continue
			}
			if err := r.apply(ctx, m, true); err != nil {
				return current, err
			}
			current = m.Version
		}
	case target < current:
		for i := len(r.migrations) - 1; i >= 0; i-- {
			m := r.migrations[i]
			if m.Version > current || m.Version <= target {
				continue
			}
			if m.DownSQL == "" {
				return current, fmt.Errorf("no down migration for version %d", m.Version)
			}
			if err := r.apply(ctx, m, false); err != nil {
				return current, err
			}
			current = m.Version - 1
		}
	default:
		r.log.Info().Int("version", current).Msg("already at target version")
	}
	return current, nil
}

func (r *Runner) apply(ctx context.Context, m Migration, up bool) error {
	direction, content, target := "up", m.UpSQL, m.Version
	if !up {
		direction, content, target = "down", m.DownSQL, m.Version-1
	}

	r.log.Info().Str("direction", direction).Int("version", m.Version).Str("name", m.Name).Msg("applying migration")

	if err := r.setVersion(ctx, m.Version, true); err != nil {
		return fmt.Errorf("setting dirty flag: %w", err)
	}
	for _, stmt := range SplitSQL(content) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d %s: %w\nSQL: %s", m.Version, direction, err, stmt)
		}
	}
	if err := r.setVersion(ctx, target, false); err != nil {
		return fmt.Errorf("clearing dirty flag: %w", err)
	}
	return nil
}

// SplitSQL splits a script on semicolons, dropping empty statements.
func SplitSQL(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// RunAll applies every pending migration.
func RunAll(ctx context.Context, db *sql.DB) error {
	r, err := NewRunner(db, zerolog.Nop())
	if err != nil {
		return err
	}
	_, err = r.To(ctx, -1)
	return err
}
