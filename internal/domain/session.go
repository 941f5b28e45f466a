package domain

import (
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// SessionStatus represents the status of a training session
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionConfirmed SessionStatus = "confirmed"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session is a concrete, dated training session. Sessions are never deleted.
type Session struct {
	ID         int64
	TrainerID  int64
	ClientID   int64
	ClientName string // denormalized from the user service, may be empty
	Date       time.Time
	Start      types.TimeString
	End        types.TimeString
	Status     SessionStatus
	Category   string
	Location   string
	Notes      *string
	RequestID  *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the session time bounds.
func (s *Session) Interval() TimeInterval {
	return TimeInterval{Start: s.Start, End: s.End}
}

// IsActive returns true if the session blocks its interval
func (s *Session) IsActive() bool {
	return s.Status == SessionPending || s.Status == SessionConfirmed
}

// CanBeCancelled returns true if the session can be cancelled
func (s *Session) CanBeCancelled() bool {
	return s.IsActive()
}

// CanBeRescheduled returns true if date and time may still change
func (s *Session) CanBeRescheduled() bool {
	return s.IsActive()
}

// CanBeCompleted returns true if the session can be marked as held
func (s *Session) CanBeCompleted() bool {
	return s.Status == SessionConfirmed
}

// DisplayClient returns the client name or a fallback with the client id
func (s *Session) DisplayClient() string {
	if s.ClientName != "" {
		return s.ClientName
	}
	return "client #" + itoa(s.ClientID)
}

// SessionsFilter фильтр выборки сессий тренера
type SessionsFilter struct {
	TrainerID  int64           // Обязательный параметр
	StartDate  *time.Time      // Начало периода включительно (опционально)
	EndDate    *time.Time      // Конец периода включительно (опционально)
	Statuses   []SessionStatus // Явный список статусов (опционально)
	ActiveOnly bool            // Только pending/confirmed, если Statuses пуст
	DayOfWeek  *int            // Только даты с этим днём недели (0 = воскресенье)
	ExcludeID  *int64          // Исключить сессию (перенос сессии на новое время)
}

// SingleDate reports whether the filter targets exactly one date.
func (f SessionsFilter) SingleDate() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDay(*f.StartDate, *f.EndDate)
}

// Matches applies the filter to one session.
func (f SessionsFilter) Matches(s *Session) bool {
	if s.TrainerID != f.TrainerID {
		return false
	}
	if f.ExcludeID != nil && s.ID == *f.ExcludeID {
		return false
	}
	date := DateOnly(s.Date)
	if f.StartDate != nil && date.Before(DateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && date.After(DateOnly(*f.EndDate)) {
		return false
	}
	if f.DayOfWeek != nil && DayOfWeekOf(date) != *f.DayOfWeek {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, st := range f.Statuses {
			if s.Status == st {
				return true
			}
		}
		return false
	}
	if f.ActiveOnly {
		return s.IsActive()
	}
	return true
}

// EffectiveStatuses returns the statuses the filter selects, nil meaning all.
func (f SessionsFilter) EffectiveStatuses() []SessionStatus {
	if len(f.Statuses) > 0 {
		return f.Statuses
	}
	if f.ActiveOnly {
		return ActiveStatuses
	}
	return nil
}

// ParseSessionStatus validates a status string
func ParseSessionStatus(s string) (SessionStatus, bool) {
	status := SessionStatus(s)
	switch status {
	case SessionPending, SessionConfirmed, SessionCompleted, SessionCancelled:
		return status, true
	}
	return "", false
}
