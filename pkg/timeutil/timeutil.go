// Package timeutil provides school-timezone calendar helpers.
// The whole domain works at calendar-day granularity (YYYY-MM-DD): events
// and attendance records carry dates, not instants, so "today" must be
// computed in the school's timezone, not the server's.
// No external dependencies - uses only standard library.
package timeutil

import (
	"sync"
	"time"
)

// DefaultTimezone is the school timezone used until Configure is called.
var DefaultTimezone = "Asia/Almaty"

var (
	zoneMu sync.RWMutex
	zone   *time.Location
)

func schoolZone() *time.Location {
	zoneMu.RLock()
	defer zoneMu.RUnlock()

	if zone != nil {
		return zone
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Configure sets the school timezone for the process. Called once at boot
// from config; an unknown name falls back to UTC.
func Configure(name string) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}

	zoneMu.Lock()
	zone = loc
	zoneMu.Unlock()
}

// Zone returns the configured school timezone.
func Zone() *time.Location {
	return schoolZone()
}

// Now returns the current time in the school timezone.
func Now() time.Time {
	return time.Now().In(schoolZone())
}

// StartOfDay returns the start of the day (00:00:00) in the school timezone.
func StartOfDay(t time.Time) time.Time {
	local := t.In(schoolZone())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, schoolZone())
}

// IsToday checks if the given time is today in the school timezone.
func IsToday(t time.Time) bool {
	now := Now()
	local := t.In(schoolZone())
	return local.Year() == now.Year() &&
		local.Month() == now.Month() &&
		local.Day() == now.Day()
}

// DaysSince calculates the number of calendar days since the given time.
func DaysSince(t time.Time) int {
	now := StartOfDay(Now())
	then := StartOfDay(t)
	return int(now.Sub(then).Hours() / 24)
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatHumanDate is a human-readable format.
	FormatHumanDate = "2 January 2006"
)

// TodayString returns today's date (YYYY-MM-DD) in the school timezone.
func TodayString() string {
	return Now().Format(FormatDate)
}

// DateString formats a time as a date string (YYYY-MM-DD) in the school timezone.
func DateString(t time.Time) string {
	return t.In(schoolZone()).Format(FormatDate)
}

// ShiftDays returns the date string n calendar days from today
// (negative n goes into the past).
func ShiftDays(n int) string {
	return DateString(Now().AddDate(0, 0, n))
}
