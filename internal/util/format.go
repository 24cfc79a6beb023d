package util

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber formats an int64 with K/M suffix for readability.
// Examples: 500 -> "500", 1500 -> "1.5K", 1500000 -> "1.5M"
func FormatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatCurrency formats a dollar amount rounded to whole dollars with
// thousands separators. Examples: 1234.5 -> "$1,235", -20 -> "-$20"
func FormatCurrency(v float64) string {
	r := math.Round(v)
	if r < 0 {
		return printer.Sprintf("-$%d", int64(-r))
	}
	return printer.Sprintf("$%d", int64(r))
}

// FormatCompactCurrency formats a dollar amount with K/M suffix.
// Examples: 950 -> "$950", 1500 -> "$1.5K", 2500000 -> "$2.5M"
func FormatCompactCurrency(v float64) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("$%.1fM", v/1000000)
	case v >= 1000:
		return fmt.Sprintf("$%.1fK", v/1000)
	default:
		return FormatCurrency(v)
	}
}

// FormatPercentage formats an already-scaled percentage value.
// Example: FormatPercentage(2.456, 1) -> "2.5%"
func FormatPercentage(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// CalculateTrend returns the absolute percentage change from previous to
// current and whether it is non-negative. A zero previous value yields a
// flat, positive trend.
func CalculateTrend(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, true
	}
	trend := (current - previous) / previous * 100
	return math.Abs(trend), trend >= 0
}

// FormatDateHuman formats a YYYY-MM-DD date to human-readable format (Jan 2, 2006).
// Returns the original string if parsing fails.
func FormatDateHuman(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
