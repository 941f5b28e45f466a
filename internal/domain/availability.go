package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// AvailabilitySlot is a template interval for one day of week, or a reconciled
// sub-interval of it. IsBooked is derived by reconciliation and never authored.
type AvailabilitySlot struct {
	ID          int64
	TrainerID   int64
	DayOfWeek   int // 0 = Sunday
	Start       types.TimeString
	End         types.TimeString
	IsAvailable bool
	IsBooked    bool
	SessionID   *int64 // set on booked sub-intervals
}

// Interval returns the slot bounds.
func (s AvailabilitySlot) Interval() TimeInterval {
	return TimeInterval{Start: s.Start, End: s.End}
}

// IsFree reports whether the slot can take a new session.
func (s AvailabilitySlot) IsFree() bool {
	return s.IsAvailable && !s.IsBooked
}

// ValidateDayOfWeek checks the 0..6 range.
func ValidateDayOfWeek(day int) error {
	if day < 0 || day >= DaysPerWeek {
		return fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, day)
	}
	return nil
}

// DayOfWeekOf returns the 0..6 weekday of a date, Sunday first.
func DayOfWeekOf(date time.Time) int {
	return int(date.Weekday())
}

// WeekdayName returns the English weekday name, e.g. "Tuesday".
func WeekdayName(day int) string {
	return time.Weekday(day).String()
}
