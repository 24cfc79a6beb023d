package util

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{1500, "1.5K"},
		{999999, "1000.0K"},
		{1500000, "1.5M"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{12.4, "$12"},
		{1234.5, "$1,235"},
		{1234567, "$1,234,567"},
		{-20, "-$20"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompactCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1500, "$1.5K"},
		{2500000, "$2.5M"},
	}
	for _, tt := range tests {
		if got := FormatCompactCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCompactCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(2.456, 1); got != "2.5%" {
		t.Errorf("got %q, want 2.5%%", got)
	}
	if got := FormatPercentage(30, 0); got != "30%" {
		t.Errorf("got %q, want 30%%", got)
	}
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		wantValue         float64
		wantPositive      bool
	}{
		{"growth", 150, 100, 50, true},
		{"decline", 75, 100, 25, false},
		{"flat", 100, 100, 0, true},
		{"no previous", 100, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, pos := CalculateTrend(tt.current, tt.previous)
			if math.Abs(v-tt.wantValue) > 1e-9 || pos != tt.wantPositive {
				t.Errorf("CalculateTrend(%v, %v) = (%v, %v), want (%v, %v)",
					tt.current, tt.previous, v, pos, tt.wantValue, tt.wantPositive)
			}
		})
	}
}

func TestFormatDateHuman(t *testing.T) {
	if got := FormatDateHuman("2024-06-15"); got != "Jun 15, 2024" {
		t.Errorf("got %q", got)
	}
	if got := FormatDateHuman("not-a-date"); got != "not-a-date" {
		t.Errorf("invalid input should pass through, got %q", got)
	}
}
