package create_session

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	ClientID int64   `json:"clientId"`
	Date     string  `json:"date"`  // "2025-10-15"
	Start    string  `json:"start"` // "10:00"
	End      string  `json:"end"`   // "11:00"
	Category string  `json:"category,omitempty"`
	Location string  `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSessionRequest) ToServiceRequest(trainerID int64) (*models.CreateSessionRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateSessionRequest{
		TrainerID: trainerID,
		ClientID:  r.ClientID,
		Date:      date,
		Start:     r.Start,
		End:       r.End,
		Category:  r.Category,
		Location:  r.Location,
		Notes:     r.Notes,
	}, nil
}
