package models

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// Request модели

// UpsertSlotRequest добавление или замена интервала шаблона
type UpsertSlotRequest struct {
	TrainerID    int64
	DayOfWeek    int
	Start        string // "HH:MM"
	End          string // "HH:MM"
	IsAvailable  bool
	ReplaceIndex *int // индекс в упорядоченном списке дня, nil - добавить новый
}

// Response модели

// SlotResponse интервал шаблона или пересчитанный подинтервал
type SlotResponse struct {
	ID          int64  `json:"id"`
	DayOfWeek   int    `json:"dayOfWeek"`
	Start       string `json:"start"`
	End         string `json:"end"`
	IsAvailable bool   `json:"isAvailable"`
	IsBooked    bool   `json:"isBooked"`
	SessionID   *int64 `json:"sessionId,omitempty"`
}

// DayResponse интервалы одного дня недели
type DayResponse struct {
	TrainerID int64          `json:"trainerId"`
	DayOfWeek int            `json:"dayOfWeek"`
	DayName   string         `json:"dayName"`
	Slots     []SlotResponse `json:"slots"`
}

// WeekResponse шаблон на всю неделю
type WeekResponse struct {
	TrainerID int64         `json:"trainerId"`
	Days      []DayResponse `json:"days"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s domain.AvailabilitySlot) SlotResponse {
	return SlotResponse{
		ID:          s.ID,
		DayOfWeek:   s.DayOfWeek,
		Start:       s.Start.String(),
		End:         s.End.String(),
		IsAvailable: s.IsAvailable,
		IsBooked:    s.IsBooked,
		SessionID:   s.SessionID,
	}
}

// FromDomainSlots конвертирует список слотов
func FromDomainSlots(slots []domain.AvailabilitySlot) []SlotResponse {
	result := make([]SlotResponse, len(slots))
	for i, s := range slots {
		result[i] = FromDomainSlot(s)
	}
	return result
}

// NewDayResponse собирает ответ по одному дню
func NewDayResponse(trainerID int64, dayOfWeek int, slots []domain.AvailabilitySlot) *DayResponse {
	return &DayResponse{
		TrainerID: trainerID,
		DayOfWeek: dayOfWeek,
		DayName:   domain.WeekdayName(dayOfWeek),
		Slots:     FromDomainSlots(slots),
	}
}

// NewWeekResponse раскладывает шаблон по дням недели (все 7 дней, даже пустые)
func NewWeekResponse(trainerID int64, slots []domain.AvailabilitySlot) *WeekResponse {
	byDay := make([][]domain.AvailabilitySlot, domain.DaysPerWeek)
	for _, s := range slots {
		if s.DayOfWeek >= 0 && s.DayOfWeek < domain.DaysPerWeek {
			byDay[s.DayOfWeek] = append(byDay[s.DayOfWeek], s)
		}
	}

	resp := &WeekResponse{
		TrainerID: trainerID,
		Days:      make([]DayResponse, domain.DaysPerWeek),
	}
	for day := 0; day < domain.DaysPerWeek; day++ {
		resp.Days[day] = *NewDayResponse(trainerID, day, byDay[day])
	}
	return resp
}
