package analytics

import (
	"sort"

	"github.com/emiliopalmerini/execdash/internal/ports"
	"github.com/emiliopalmerini/execdash/internal/util"
)

// rowReader reads typed columns from a result row and remembers the
// columns that were absent, so schema drift degrades to zero values.
type rowReader struct {
	row     ports.Row
	missing []string
}

func newRowReader(row ports.Row) *rowReader {
	return &rowReader{row: row}
}

func (r *rowReader) get(col string) any {
	v, ok := r.row[col]
	if !ok {
		r.missing = append(r.missing, col)
	}
	return v
}

func (r *rowReader) float(col string) float64 { return util.ToFloat64(r.get(col)) }
func (r *rowReader) int(col string) int64     { return util.ToInt64(r.get(col)) }
func (r *rowReader) string(col string) string { return util.ToString(r.get(col)) }

func dedupe(cols []string) []string {
	seen := make(map[string]struct{}, len(cols))
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
