package domain

import (
	"strconv"
	"time"
)

// DateOnly returns the calendar date of t (as seen in t's location) at UTC midnight.
// All calendar dates share the UTC zone, matching ParseDate and DATE columns.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
