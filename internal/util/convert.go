package util

import (
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// ToInt64 safely converts a warehouse value to int64.
// Handles the integer, float, string and NUMERIC (*big.Rat) shapes returned
// by BigQuery and libsql, plus sql.Null* wrappers.
// Returns 0 for nil, non-finite or unsupported values.
func ToInt64(v any) int64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return int64(ToFloat64(n))
		}
		return i
	case []byte:
		return ToInt64(string(n))
	case *big.Rat:
		if n == nil {
			return 0
		}
		f, _ := n.Float64()
		return int64(f)
	case sql.NullInt64:
		if n.Valid {
			return n.Int64
		}
		return 0
	case sql.NullFloat64:
		if n.Valid {
			return int64(n.Float64)
		}
		return 0
	default:
		return 0
	}
}

// ToFloat64 safely converts a warehouse value to float64.
// Returns 0 for nil, NaN, ±Inf or unsupported values.
func ToFloat64(v any) float64 {
	if v == nil {
		return 0
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case string:
		f, _ = strconv.ParseFloat(n, 64)
	case []byte:
		f, _ = strconv.ParseFloat(string(n), 64)
	case *big.Rat:
		if n == nil {
			return 0
		}
		f, _ = n.Float64()
	case sql.NullFloat64:
		if n.Valid {
			f = n.Float64
		}
	case sql.NullInt64:
		if n.Valid {
			f = float64(n.Int64)
		}
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToString converts a warehouse value to string. nil becomes "".
func ToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case sql.NullString:
		if s.Valid {
			return s.String
		}
		return ""
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
