package calendar

import (
	"testing"
	"time"
)

func mustCalendar(t *testing.T, tz string) *Calendar {
	t.Helper()
	c, err := New(tz)
	if err != nil {
		t.Fatalf("New(%q): %v", tz, err)
	}
	return c
}

func TestDayOfCrossesUTCBoundary(t *testing.T) {
	c := mustCalendar(t, "Asia/Kolkata")

	// 20:00 UTC is already the next day in IST (+05:30).
	instant := time.Date(2024, 5, 15, 20, 0, 0, 0, time.UTC)
	if got := c.DayOf(instant); got != "2024-05-16" {
		t.Fatalf("expected 2024-05-16 in IST, got %s", got)
	}
}

func TestPreviousMonthOf(t *testing.T) {
	c := mustCalendar(t, "")

	cases := map[time.Time]string{
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC):    "2024-05",
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC):   "2023-12",
		time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC): "2024-02",
	}
	for instant, want := range cases {
		if got := c.PreviousMonthOf(instant); got != want {
			t.Fatalf("PreviousMonthOf(%s): expected %s, got %s", instant, want, got)
		}
	}
}

func TestMonthRangeHandlesLeapYears(t *testing.T) {
	start, end, err := MonthRange("2024-02")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if start != "2024-02-01" || end != "2024-02-29" {
		t.Fatalf("expected leap February range, got %s..%s", start, end)
	}

	start, end, err = MonthRange("2023-02")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if start != "2023-02-01" || end != "2023-02-28" {
		t.Fatalf("expected non-leap February range, got %s..%s", start, end)
	}
}

func TestMonthRangeRejectsGarbage(t *testing.T) {
	if _, _, err := MonthRange("not-a-month"); err == nil {
		t.Fatal("expected error for invalid month key")
	}
}

func TestMonthOfDay(t *testing.T) {
	if got := MonthOfDay("2024-05-15"); got != "2024-05" {
		t.Fatalf("expected 2024-05, got %s", got)
	}
}

func TestWeekdayLabel(t *testing.T) {
	label, err := WeekdayLabel("2024-05-15")
	if err != nil {
		t.Fatalf("WeekdayLabel: %v", err)
	}
	if label != "Wed" {
		t.Fatalf("expected Wed, got %s", label)
	}
}

func TestNewRejectsUnknownZone(t *testing.T) {
	if _, err := New("Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
