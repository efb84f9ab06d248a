package clock

import "time"

// Clock supplies "now" so date rules (no future attendance, fixed-cost
// validity, tenure years) can be tested against a fixed day.
type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today truncates the clock's time to a UTC calendar date.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf normalizes t to midnight UTC, the canonical form for all
// date-only columns (attendance, consumption, validity ranges).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
