package sessions

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// parseTimes проверяет формат HH:MM; порядок начала и конца проверяет валидатор
func parseTimes(start, end string) (types.TimeString, types.TimeString, error) {
	s, err := types.NewTimeStringFromString(start)
	if err != nil {
		return "", "", fmt.Errorf("%w: start: %v", ErrInvalidTime, err)
	}
	e, err := types.NewTimeStringFromString(end)
	if err != nil {
		return "", "", fmt.Errorf("%w: end: %v", ErrInvalidTime, err)
	}
	return s, e, nil
}

func validateIDs(trainerID, clientID int64) error {
	if trainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	if clientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

func validateLength(value string, max int, field string) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, field, max)
	}
	return nil
}

// validateCreateRequest заявка клиента проверяется только на формат
func validateCreateRequest(req *models.CreateRequestRequest) (types.TimeString, types.TimeString, error) {
	if err := validateIDs(req.TrainerID, req.ClientID); err != nil {
		return "", "", err
	}
	if err := validateDate(req.Date); err != nil {
		return "", "", err
	}
	if err := validateLength(req.Message, domain.MaxMessageLength, "message"); err != nil {
		return "", "", err
	}

	start, end, err := parseTimes(req.Start, req.End)
	if err != nil {
		return "", "", err
	}
	if !end.IsAfter(start) {
		return "", "", fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	return start, end, nil
}

func validateCreateSession(req *models.CreateSessionRequest) (types.TimeString, types.TimeString, error) {
	if err := validateIDs(req.TrainerID, req.ClientID); err != nil {
		return "", "", err
	}
	if err := validateDate(req.Date); err != nil {
		return "", "", err
	}
	if err := validateLength(req.Category, domain.MaxCategoryLength, "category"); err != nil {
		return "", "", err
	}
	if err := validateLength(req.Location, domain.MaxLocationLength, "location"); err != nil {
		return "", "", err
	}
	if req.Notes != nil {
		if err := validateLength(*req.Notes, domain.MaxNotesLength, "notes"); err != nil {
			return "", "", err
		}
	}

	return parseTimes(req.Start, req.End)
}

func validateReschedule(req *models.RescheduleSessionRequest) (types.TimeString, types.TimeString, error) {
	if req.TrainerID <= 0 || req.SessionID <= 0 {
		return "", "", fmt.Errorf("%w: trainerID and sessionID must be positive", ErrInvalidInput)
	}
	if err := validateDate(req.Date); err != nil {
		return "", "", err
	}

	return parseTimes(req.Start, req.End)
}

func validateReason(reason *string) error {
	if reason == nil {
		return nil
	}
	return validateLength(*reason, domain.MaxCancellationReasonLength, "reason")
}
