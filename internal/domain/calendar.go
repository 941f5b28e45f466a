package domain

import "time"

// CalendarMode window size for the calendar projection
type CalendarMode string

const (
	CalendarWeek  CalendarMode = "week"
	CalendarMonth CalendarMode = "month"
)

// CalendarNav navigation relative to the anchor date
type CalendarNav string

const (
	NavNone     CalendarNav = ""
	NavNext     CalendarNav = "next"
	NavPrevious CalendarNav = "previous"
	NavToday    CalendarNav = "today"
)

// DayProjection is one calendar date: reconciled slots of its weekday for that date
// and the sessions held on it.
type DayProjection struct {
	Date      time.Time
	DayOfWeek int
	Slots     []AvailabilitySlot
	Sessions  []*Session
}
