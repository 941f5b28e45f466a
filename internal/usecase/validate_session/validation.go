package validate_session

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

const (
	msgEndBeforeStart   = "End time must be after start time"
	msgSessionConflict  = "Conflicts with %s's session %s-%s"
	msgNoAvailability   = "Trainer has no availability on %s"
	msgOutsideAvailable = "Requested time is outside available hours or already booked"
	msgInThePast        = "Session must start in the future"
	msgFarInFuture      = "Session is more than %d months in advance"
	msgUnusualStartHour = "Session starts at %s, outside usual hours %02d:00-%02d:00"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ExcludeSessionID != nil && *req.ExcludeSessionID <= 0 {
		return fmt.Errorf("%w: excludeSessionId must be positive", ErrInvalidInput)
	}

	if err := validateTime(req.Start, "start"); err != nil {
		return err
	}
	return validateTime(req.End, "end")
}

func validateTime(t types.TimeString, field string) error {
	if t.IsZero() {
		return fmt.Errorf("%w: %s is required", ErrInvalidTime, field)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTime, field, err)
	}
	return nil
}

// checkSessionConflicts ошибка на каждую активную сессию, пересекающуюся с предлагаемым интервалом
func checkSessionConflicts(verdict *domain.ValidationVerdict, proposed domain.TimeInterval, sessions []*domain.Session) {
	for _, s := range sessions {
		if !s.IsActive() {
			continue
		}
		if s.Interval().Overlaps(proposed) {
			verdict.AddError(fmt.Sprintf(msgSessionConflict, s.DisplayClient(), s.Start, s.End))
		}
	}
}

// checkAvailability предлагаемый интервал должен целиком лежать в одном свободном подинтервале
func checkAvailability(
	verdict *domain.ValidationVerdict,
	proposed domain.TimeInterval,
	dayOfWeek int,
	template []domain.AvailabilitySlot,
	reconciled []domain.AvailabilitySlot,
) {
	if !availability.HasAvailableTemplate(template) {
		verdict.AddError(fmt.Sprintf(msgNoAvailability, domain.WeekdayName(dayOfWeek)))
		return
	}

	for _, free := range availability.FreeIntervals(reconciled) {
		if free.Interval().Contains(proposed) {
			return
		}
	}

	verdict.AddError(msgOutsideAvailable)
}

// checkTemporal начало сессии строго позже текущего момента
func checkTemporal(verdict *domain.ValidationVerdict, date time.Time, start types.TimeString, now time.Time) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return
	}

	if !startOf(date, startMinutes, now.Location()).After(now) {
		verdict.AddError(msgInThePast)
	}
}

// addAdvisoryWarnings предупреждения: далёкая дата и непривычное время начала
func addAdvisoryWarnings(verdict *domain.ValidationVerdict, date time.Time, start types.TimeString, now time.Time) {
	horizon := domain.DateOnly(now).AddDate(0, domain.AdvisoryHorizonMonths, 0)
	if date.After(horizon) {
		verdict.AddWarning(fmt.Sprintf(msgFarInFuture, domain.AdvisoryHorizonMonths))
	}

	hour, err := start.Hour()
	if err != nil {
		return
	}
	if hour < domain.EarliestAdvisoryHour || hour >= domain.LatestAdvisoryHour {
		verdict.AddWarning(fmt.Sprintf(msgUnusualStartHour, start, domain.EarliestAdvisoryHour, domain.LatestAdvisoryHour))
	}
}
