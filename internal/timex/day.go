package timex

import "time"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from from to to,
// measured in from's location. It is negative when to is earlier.
//
// Days are counted on the calendar rather than by dividing elapsed hours,
// so DST transitions do not shift the result.
func DaysBetween(from, to time.Time) int {
	loc := from.Location()
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(loc).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AtTimeOfDay returns the instant at hour:minute on t's calendar day in loc.
func AtTimeOfDay(t time.Time, hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc)
}

// Clock is the source of "now". Everything that depends on the current
// date takes one instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
