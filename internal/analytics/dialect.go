package analytics

import "fmt"

// Dialect adapts the canonical queries to one warehouse SQL flavour.
// Only table qualification, float casts and date parameters differ.
type Dialect struct {
	Name string

	table     func(name string) string
	float     func(expr string) string
	dateParam func(name string) string
}

// BigQueryDialect qualifies tables with dataset and casts to FLOAT64/DATE.
func BigQueryDialect(dataset string) Dialect {
	return Dialect{
		Name: "bigquery",
		table: func(name string) string {
			return fmt.Sprintf("`%s.%s`", dataset, name)
		},
		float: func(expr string) string {
			return fmt.Sprintf("CAST(%s AS FLOAT64)", expr)
		},
		dateParam: func(name string) string {
			return fmt.Sprintf("CAST(@%s AS DATE)", name)
		},
	}
}

// SQLiteDialect targets the local libsql sample warehouse, where dates are
// stored as YYYY-MM-DD text.
func SQLiteDialect() Dialect {
	return Dialect{
		Name: "sqlite",
		table: func(name string) string {
			return name
		},
		float: func(expr string) string {
			return fmt.Sprintf("CAST(%s AS REAL)", expr)
		},
		dateParam: func(name string) string {
			return "@" + name
		},
	}
}

func (d Dialect) Table(name string) string     { return d.table(name) }
func (d Dialect) Float(expr string) string     { return d.float(expr) }
func (d Dialect) DateParam(name string) string { return d.dateParam(name) }
