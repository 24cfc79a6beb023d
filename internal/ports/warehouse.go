package ports

import "context"

// Param is a named query parameter, referenced in SQL as @Name.
type Param struct {
	Name  string
	Value any
}

// Query is a SQL statement with its bound parameters.
type Query struct {
	SQL    string
	Params []Param
}

// ParamMap returns the parameters keyed by name, for logging and errors.
func (q Query) ParamMap() map[string]any {
	m := make(map[string]any, len(q.Params))
	for _, p := range q.Params {
		m[p.Name] = p.Value
	}
	return m
}

// Row is one result row keyed by column name.
type Row map[string]any

// Warehouse executes read-only analytical queries.
type Warehouse interface {
	// Query runs q and returns every result row.
	Query(ctx context.Context, q Query) ([]Row, error)
	// Close releases the underlying client.
	Close() error
}
