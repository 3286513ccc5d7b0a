// Package calendar pins every day- and month-boundary computation to one
// business timezone so that event bucketing, owner queries and the monthly
// rollup never disagree about what "today" means.
package calendar

import (
	"fmt"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// Calendar resolves business dates in a fixed IANA timezone.
type Calendar struct {
	loc *time.Location
}

// New loads the given IANA zone. An empty name falls back to UTC.
func New(timezone string) (*Calendar, error) {
	if timezone == "" {
		return &Calendar{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location exposes the configured zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DayOf returns the business date string for the given instant.
func (c *Calendar) DayOf(t time.Time) string {
	return t.In(c.loc).Format(DayLayout)
}

// MonthOf returns the business month string for the given instant.
func (c *Calendar) MonthOf(t time.Time) string {
	return t.In(c.loc).Format(MonthLayout)
}

// Today is DayOf(now).
func (c *Calendar) Today() string {
	return c.DayOf(time.Now())
}

// DaysBefore returns the date string n days before the given instant.
func (c *Calendar) DaysBefore(t time.Time, n int) string {
	return t.In(c.loc).AddDate(0, 0, -n).Format(DayLayout)
}

// PreviousMonthOf returns the most recently completed calendar month for the
// given instant, as "YYYY-MM". Computed by stepping back from the first day
// of the current month, so it is immune to varying month lengths.
func (c *Calendar) PreviousMonthOf(t time.Time) string {
	local := t.In(c.loc)
	firstOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
	return firstOfMonth.AddDate(0, 0, -1).Format(MonthLayout)
}

// MonthRange expands "YYYY-MM" into its inclusive first and last date
// strings, honoring month lengths and leap years.
func MonthRange(month string) (string, string, error) {
	start, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, -1)
	return start.Format(DayLayout), end.Format(DayLayout), nil
}

// MonthOfDay truncates a "YYYY-MM-DD" date string to its month key.
func MonthOfDay(date string) string {
	if len(date) < len(MonthLayout) {
		return date
	}
	return date[:len(MonthLayout)]
}

// WeekdayLabel derives the short weekday name for a date string. Labels are
// computed, never stored.
func WeekdayLabel(date string) (string, error) {
	day, err := time.Parse(DayLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.Weekday().String()[:3], nil
}
