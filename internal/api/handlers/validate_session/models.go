package validate_session

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	validateSession "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// ValidateSessionRequest HTTP request model
type ValidateSessionRequest struct {
	Date             string `json:"date"`  // "2025-10-15"
	Start            string `json:"start"` // "10:00"
	End              string `json:"end"`   // "11:00"
	ExcludeSessionID *int64 `json:"excludeSessionId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Формат времени проверяет use case, здесь только дата
func (r *ValidateSessionRequest) ToUseCaseRequest(trainerID int64) (*validateSession.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &validateSession.Request{
		TrainerID:        trainerID,
		Date:             date,
		Start:            types.TimeString(r.Start),
		End:              types.TimeString(r.End),
		ExcludeSessionID: r.ExcludeSessionID,
	}, nil
}
