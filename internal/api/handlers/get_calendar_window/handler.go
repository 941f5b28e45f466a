package get_calendar_window

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	getCalendarWindow "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/get_calendar_window"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidAnchor    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidMode      = "некорректный режим, ожидается week или month"
	msgInvalidNav       = "некорректная навигация, ожидается next, previous или today"
)

type Handler struct {
	useCase GetCalendarWindowUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarWindowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/calendar
// Query params: anchor (YYYY-MM-DD, по умолчанию сегодня), mode (week|month), nav (next|previous|today)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/calendar - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	query := r.URL.Query()

	var anchor time.Time
	if raw := query.Get("anchor"); raw != "" {
		anchor, err = domain.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/calendar - Invalid anchor: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAnchor)
			return
		}
	}

	resp, err := h.useCase.Execute(r.Context(), &getCalendarWindow.Request{
		TrainerID: trainerID,
		Anchor:    anchor,
		Mode:      domain.CalendarMode(query.Get("mode")),
		Nav:       domain.CalendarNav(query.Get("nav")),
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendarWindow.ErrInvalidMode):
			h.logger.Warn("GET /trainers/{id}/calendar - Invalid mode: %s", query.Get("mode"))
			handlers.RespondBadRequest(w, msgInvalidMode)

		case errors.Is(err, getCalendarWindow.ErrInvalidNav):
			h.logger.Warn("GET /trainers/{id}/calendar - Invalid nav: %s", query.Get("nav"))
			handlers.RespondBadRequest(w, msgInvalidNav)

		case errors.Is(err, getCalendarWindow.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/calendar - Invalid input: trainer_id=%d", trainerID)
			handlers.RespondBadRequest(w, msgInvalidTrainerID)

		default:
			h.logger.Error("GET /trainers/{id}/calendar - Failed to build window: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
