package domain

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Window is a run of Days calendar days ending on End, inclusive.
type Window struct {
	Days int
	End  time.Time
}

// NewWindow returns the window of days ending on the UTC calendar day of now.
func NewWindow(days int, now time.Time) Window {
	n := now.UTC()
	return Window{
		Days: days,
		End:  time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// Start returns the first day of the window.
func (w Window) Start() time.Time {
	return w.End.AddDate(0, 0, -(w.Days - 1))
}

// Previous returns the equal-length window immediately preceding w.
func (w Window) Previous() Window {
	return Window{Days: w.Days, End: w.End.AddDate(0, 0, -w.Days)}
}

// Day returns the i-th day of the window, 0-based from Start.
func (w Window) Day(i int) time.Time {
	return w.Start().AddDate(0, 0, i)
}

// StartKey and EndKey are the YYYYMMDD integer keys used by the fact tables.
func (w Window) StartKey() int64 { return DateKey(w.Start()) }
func (w Window) EndKey() int64   { return DateKey(w.End) }

// StartDate and EndDate format the bounds as YYYY-MM-DD.
func (w Window) StartDate() string { return w.Start().Format(dateLayout) }
func (w Window) EndDate() string   { return w.End.Format(dateLayout) }

func (w Window) String() string {
	return fmt.Sprintf("%s..%s (%d days)", w.StartDate(), w.EndDate(), w.Days)
}

// DateKey converts a date to its YYYYMMDD integer key.
func DateKey(t time.Time) int64 {
	return int64(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
