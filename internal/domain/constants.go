package domain

// Default template values
const (
	DefaultDayStart = "09:00"
	DefaultDayEnd   = "17:00"
)

// Business validation constants
const (
	DaysPerWeek                 = 7
	MaxSlotsPerDay              = 24
	MaxNotesLength              = 500
	MaxMessageLength            = 1000
	MaxCancellationReasonLength = 500
	MaxCategoryLength           = 100
	MaxLocationLength           = 200
)

// Advisory thresholds for validation warnings
const (
	AdvisoryHorizonMonths = 3
	EarliestAdvisoryHour  = 6
	LatestAdvisoryHour    = 22
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses sessions that block their interval
var ActiveStatuses = []SessionStatus{
	SessionPending,
	SessionConfirmed,
}

// CalendarStatuses sessions rendered on the calendar
var CalendarStatuses = []SessionStatus{
	SessionPending,
	SessionConfirmed,
	SessionCompleted,
}
