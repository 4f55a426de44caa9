// Package timezone resolves the wall-clock location of study days and
// reminder times.
package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const (
	TimezoneUTC   = "UTC"
	TimezoneLocal = "Local"
)

// Parse parses an IANA timezone identifier (e.g., "America/Sao_Paulo").
// Empty selects UTC. If the timezone is invalid, returns UTC and an error.
func Parse(tz string) (*time.Location, error) {
	switch tz {
	case "", TimezoneUTC:
		return time.UTC, nil
	case TimezoneLocal:
		return time.Local, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// StartOfDay returns the start of the day (00:00:00) of t in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.UTC
	}
	t = t.In(tz)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, tz)
}

// DayRange returns the Unix bounds [start, end) of the day of t in the given timezone.
func DayRange(t time.Time, tz *time.Location) (int64, int64) {
	start := StartOfDay(t, tz)
	return start.Unix(), start.AddDate(0, 0, 1).Unix()
}

// Clock wraps now so that it reports times in the given timezone.
func Clock(now func() time.Time, tz *time.Location) func() time.Time {
	if tz == nil {
		return now
	}
	return func() time.Time {
		return now().In(tz)
	}
}
