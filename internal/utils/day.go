package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycheck/internal/constants"
)

const secondsPerDay = 24 * 60 * 60

// Day is a calendar date expressed as the number of days since 1970-01-01.
// It carries no timezone: two instants map to the same Day when they fall on
// the same wall-clock date in the location they were observed in.
type Day int

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) Day {
	if loc != nil {
		now = now.In(loc)
	}
	return DayOf(now)
}

// ParseDay parses a YYYY-MM-DD date key.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DayOf(t), nil
}

// MustParseDay is ParseDay for constant inputs; it panics on malformed keys.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// AddDays returns the date n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Time returns midnight UTC of d.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// String formats d as a YYYY-MM-DD date key.
func (d Day) String() string {
	return d.Time().Format(constants.DateFormat)
}

// Display formats d as a short human date (e.g. "Jan 2").
func (d Day) Display() string {
	return d.Time().Format(constants.DisplayDateFormat)
}
