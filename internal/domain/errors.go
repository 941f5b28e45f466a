package domain

import "errors"

// ErrInvalidDayOfWeek is returned for day-of-week values outside 0..6.
var ErrInvalidDayOfWeek = errors.New("domain: day of week must be in 0..6")
