package turso

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/emiliopalmerini/execdash/internal/ports"
)

var namedParam = regexp.MustCompile(`@([A-Za-z_][A-Za-z0-9_]*)`)

// Warehouse implements ports.Warehouse over the local libsql sample warehouse.
type Warehouse struct {
	db *sql.DB
}

func NewWarehouse(db *sql.DB) *Warehouse {
	return &Warehouse{db: db}
}

// Query binds the @name parameters of q positionally and returns every row.
func (w *Warehouse) Query(ctx context.Context, q ports.Query) ([]ports.Row, error) {
	query, args, err := bindPositional(q)
	if err != nil {
		return nil, err
	}

	rows, err := w.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	var out []ports.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make(ports.Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func (w *Warehouse) Close() error {
	return w.db.Close()
}

// bindPositional rewrites @name references to ? and lists their values in
// order of appearance.
func bindPositional(q ports.Query) (string, []any, error) {
	values := q.ParamMap()
	var args []any
	var missing string

	query := namedParam.ReplaceAllStringFunc(q.SQL, func(m string) string {
		name := m[1:]
		v, ok := values[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		args = append(args, v)
		return "?"
	})
	if missing != "" {
		return "", nil, fmt.Errorf("unbound query parameter @%s", missing)
	}
	return query, args, nil
}
