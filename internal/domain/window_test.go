package domain

import (
	"testing"
	"time"
)

func TestNewWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 22, 45, 0, 0, time.FixedZone("CET", 3600))
	w := NewWindow(30, now)

	if got := w.EndDate(); got != "2024-03-10" {
		t.Errorf("EndDate() = %s, want 2024-03-10", got)
	}
	if got := w.StartDate(); got != "2024-02-10" {
		t.Errorf("StartDate() = %s, want 2024-02-10", got)
	}
	if got := w.StartKey(); got != 20240210 {
		t.Errorf("StartKey() = %d, want 20240210", got)
	}
	if got := w.EndKey(); got != 20240310 {
		t.Errorf("EndKey() = %d, want 20240310", got)
	}
}

func TestWindow_SingleDay(t *testing.T) {
	w := NewWindow(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if w.StartKey() != w.EndKey() {
		t.Errorf("one-day window should start and end on the same day, got %s", w)
	}
}

func TestWindow_Previous(t *testing.T) {
	w := NewWindow(7, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	prev := w.Previous()

	if got := prev.EndDate(); got != "2024-02-23" {
		t.Errorf("Previous().EndDate() = %s, want 2024-02-23", got)
	}
	if got := prev.StartDate(); got != "2024-02-17" {
		t.Errorf("Previous().StartDate() = %s, want 2024-02-17", got)
	}
	// Day i of the previous window is exactly Days before day i of w.
	for i := 0; i < w.Days; i++ {
		if diff := w.Day(i).Sub(prev.Day(i)); diff != 7*24*time.Hour {
			t.Errorf("day %d offset = %v, want 168h", i, diff)
		}
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	if key := DateKey(d); key != 20231231 {
		t.Fatalf("DateKey() = %d, want 20231231", key)
	}
}
