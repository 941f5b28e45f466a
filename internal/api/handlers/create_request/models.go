package create_request

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

// CreateRequestRequest HTTP request model, клиент берется из X-User-ID
type CreateRequestRequest struct {
	Date    string `json:"date"`  // "2025-10-15"
	Start   string `json:"start"` // "10:00"
	End     string `json:"end"`   // "11:00"
	Message string `json:"message,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateRequestRequest) ToServiceRequest(trainerID, clientID int64) (*models.CreateRequestRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateRequestRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		Date:      date,
		Start:     r.Start,
		End:       r.End,
		Message:   r.Message,
	}, nil
}
