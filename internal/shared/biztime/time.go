// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used for
// calculating date boundaries (start of day, calendar-day bucketing, week
// boundaries for timecards).
//
// Design principles:
//   - All time storage is in UTC
//   - Day and week boundaries are computed in the business timezone first,
//     then converted to UTC for queries
//   - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// StartOfWeekUTC returns the start (00:00:00 business time) of the week
// containing t, where weeks begin on the given weekday. Converted to UTC.
func StartOfWeekUTC(t time.Time, weekStart time.Weekday) time.Time {
	bizTime := t.In(Location())
	daysBack := (int(bizTime.Weekday()) - int(weekStart) + 7) % 7
	start := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day()-daysBack, 0, 0, 0, 0, Location())
	return start.UTC()
}

// AddDays adds n calendar days to t in the business timezone and returns the
// UTC instant. Unlike t.Add(n*24h), this is DST-safe.
func AddDays(t time.Time, n int) time.Time {
	bizTime := t.In(Location())
	shifted := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day()+n,
		bizTime.Hour(), bizTime.Minute(), bizTime.Second(), bizTime.Nanosecond(), Location())
	return shifted.UTC()
}

// DateKey returns the calendar date of t in the business timezone as
// YYYY-MM-DD. Used for bucketing events by business day.
func DateKey(t time.Time) string {
	return t.In(Location()).Format("2006-01-02")
}

// ToBizTimezone converts a UTC time to business timezone for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// ParseDateInBizTimezone parses a date string (YYYY-MM-DD) as business
// timezone midnight, then returns the UTC equivalent.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// ParseWeekday maps a lowercase weekday name to time.Weekday. Defaults to
// Monday for unknown values.
func ParseWeekday(name string) time.Weekday {
	switch name {
	case "sunday":
		return time.Sunday
	case "monday", "":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}
