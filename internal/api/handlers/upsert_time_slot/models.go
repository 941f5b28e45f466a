package upsert_time_slot

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
)

// UpsertSlotRequest HTTP request model
type UpsertSlotRequest struct {
	Start        string `json:"start"` // "09:00"
	End          string `json:"end"`   // "12:00"
	IsAvailable  *bool  `json:"isAvailable,omitempty"`
	ReplaceIndex *int   `json:"replaceIndex,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
// isAvailable по умолчанию true
func (r *UpsertSlotRequest) ToServiceRequest(trainerID int64, day int) *models.UpsertSlotRequest {
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return &models.UpsertSlotRequest{
		TrainerID:    trainerID,
		DayOfWeek:    day,
		Start:        r.Start,
		End:          r.End,
		IsAvailable:  isAvailable,
		ReplaceIndex: r.ReplaceIndex,
	}
}
