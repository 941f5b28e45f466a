package get_calendar_window

import (
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	availabilityModels "github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
	sessionsModels "github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	getCalendarWindow "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/get_calendar_window"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	TrainerID  int64         `json:"trainerId"`
	Mode       string        `json:"mode"`
	Anchor     string        `json:"anchor"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	PrevAnchor string        `json:"prevAnchor"`
	NextAnchor string        `json:"nextAnchor"`
	Days       []DayResponse `json:"days"`
}

// DayResponse одна дата окна
type DayResponse struct {
	Date      string                            `json:"date"`
	DayOfWeek int                               `json:"dayOfWeek"`
	DayName   string                            `json:"dayName"`
	Slots     []availabilityModels.SlotResponse `json:"slots"`
	Sessions  []sessionsModels.SessionResponse  `json:"sessions"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendarWindow.Response) *CalendarResponse {
	result := &CalendarResponse{
		TrainerID:  resp.TrainerID,
		Mode:       string(resp.Mode),
		Anchor:     resp.Anchor.Format(domain.DateFormat),
		From:       resp.From.Format(domain.DateFormat),
		To:         resp.To.Format(domain.DateFormat),
		PrevAnchor: resp.PrevAnchor.Format(domain.DateFormat),
		NextAnchor: resp.NextAnchor.Format(domain.DateFormat),
		Days:       make([]DayResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		result.Days = append(result.Days, DayResponse{
			Date:      day.Date.Format(domain.DateFormat),
			DayOfWeek: day.DayOfWeek,
			DayName:   domain.WeekdayName(day.DayOfWeek),
			Slots:     availabilityModels.FromDomainSlots(day.Slots),
			Sessions:  sessionsModels.FromDomainSessionList(day.Sessions).Sessions,
		})
	}

	return result
}
