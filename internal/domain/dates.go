package domain

import (
	"time"
)

// DateLayout is the upstream and storage day format
const DateLayout = "2006-01-02"

// FormatDate renders t as a UTC calendar day
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// MonthStart returns the first instant of t's month in UTC
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TrailingWindow returns [today-days, today] as formatted dates
func TrailingWindow(now time.Time, days int) (string, string) {
	end := now.UTC()
	start := end.AddDate(0, 0, -days)
	return FormatDate(start), FormatDate(end)
}

// MonthToDate returns [first of month, today] as formatted dates
func MonthToDate(now time.Time) (string, string) {
	return FormatDate(MonthStart(now)), FormatDate(now)
}

// MonthsAgo returns the first day of the month n months before now
func MonthsAgo(now time.Time, n int) string {
	return FormatDate(MonthStart(now).AddDate(0, -n, 0))
}
