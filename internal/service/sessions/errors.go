package sessions

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("sessions: request not found")

	// ErrClientNotFound возвращается, когда клиент неизвестен UserService
	ErrClientNotFound = errors.New("sessions: client not found")

	// ErrRequestNotPending возвращается при повторном решении по заявке
	ErrRequestNotPending = errors.New("sessions: request is already resolved")

	// ErrCannotCancel возвращается, когда сессия не может быть отменена
	ErrCannotCancel = errors.New("sessions: session cannot be cancelled")

	// ErrCannotReschedule возвращается, когда сессия не может быть перенесена
	ErrCannotReschedule = errors.New("sessions: session cannot be rescheduled")

	// ErrCannotComplete возвращается, когда сессия не может быть завершена
	ErrCannotComplete = errors.New("sessions: session cannot be completed")

	// ErrValidationFailed возвращается, когда вердикт проверки содержит ошибки
	ErrValidationFailed = errors.New("sessions: validation failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sessions: invalid input data")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("sessions: invalid time format")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions: internal error")
)

// ValidationError отклонённое изменение вместе с вердиктом
// errors.Is(err, ErrValidationFailed) == true
type ValidationError struct {
	Verdict *domain.ValidationVerdict
}

func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error() + ": " + strings.Join(e.Verdict.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
