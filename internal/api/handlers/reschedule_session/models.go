package reschedule_session

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

// RescheduleSessionRequest HTTP request model
type RescheduleSessionRequest struct {
	Date  string `json:"date"`  // "2025-10-16"
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "11:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleSessionRequest) ToServiceRequest(trainerID, sessionID int64) (*models.RescheduleSessionRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &models.RescheduleSessionRequest{
		TrainerID: trainerID,
		SessionID: sessionID,
		Date:      date,
		Start:     r.Start,
		End:       r.End,
	}, nil
}
