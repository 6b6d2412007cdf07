package domain

import (
	"strconv"
	"time"
)

// DateLayout is the day-precision wire format used throughout the ledger.
const DateLayout = "2006-01-02"

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AddDays returns the date shifted by the given number of days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	first := MonthStart(t)
	return first.AddDate(0, 1, -1).Day()
}

// MonthKey buckets a date by calendar month, e.g. "2025-3".
func MonthKey(t time.Time) string {
	return FormatMonthKey(t.Year(), int(t.Month()))
}

// FormatMonthKey builds the bucket key from explicit year/month values.
func FormatMonthKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// DateOnly strips any time-of-day component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WithinDates reports whether t falls in [start, end] comparing dates only.
func WithinDates(t, start, end time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}

