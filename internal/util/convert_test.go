package util

import (
	"database/sql"
	"math"
	"math/big"
	"testing"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"int64", int64(42), 42},
		{"int", int(7), 7},
		{"int32", int32(8), 8},
		{"float64", float64(3.9), 3},
		{"float64 NaN", math.NaN(), 0},
		{"string valid", "123", 123},
		{"string decimal", "12.7", 12},
		{"string invalid", "abc", 0},
		{"string empty", "", 0},
		{"bytes", []byte("55"), 55},
		{"big.Rat", big.NewRat(21, 2), 10},
		{"nil big.Rat", (*big.Rat)(nil), 0},
		{"NullInt64 valid", sql.NullInt64{Int64: 99, Valid: true}, 99},
		{"NullInt64 null", sql.NullInt64{Valid: false}, 0},
		{"NullFloat64 valid", sql.NullFloat64{Float64: 15.0, Valid: true}, 15},
		{"NullFloat64 null", sql.NullFloat64{Valid: false}, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToInt64(tt.in); got != tt.want {
				t.Errorf("ToInt64(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float64", float64(3.14), 3.14},
		{"float32", float32(0.5), 0.5},
		{"int64", int64(42), 42.0},
		{"int", int(7), 7.0},
		{"string valid", "3.14", 3.14},
		{"string int", "42", 42.0},
		{"string invalid", "abc", 0},
		{"string empty", "", 0},
		{"bytes", []byte("1.25"), 1.25},
		{"big.Rat", big.NewRat(5, 4), 1.25},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
		{"NullFloat64 valid", sql.NullFloat64{Float64: 3.14, Valid: true}, 3.14},
		{"NullFloat64 null", sql.NullFloat64{Valid: false}, 0},
		{"NullInt64 valid", sql.NullInt64{Int64: 42, Valid: true}, 42.0},
		{"NullInt64 null", sql.NullInt64{Valid: false}, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToFloat64(tt.in); got != tt.want {
				t.Errorf("ToFloat64(%v) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Paid Search", "Paid Search"},
		{"bytes", []byte("Email"), "Email"},
		{"NullString valid", sql.NullString{String: "x", Valid: true}, "x"},
		{"NullString null", sql.NullString{}, ""},
		{"int64", int64(5), "5"},
		{"big.Rat", big.NewRat(1, 2), "1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToString(tt.in); got != tt.want {
				t.Errorf("ToString(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
