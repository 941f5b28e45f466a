package get_day_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidDay       = "некорректный день недели, ожидается 0 (воскресенье) - 6 (суббота)"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/availability/{day}
// Шаблон дня недели за вычетом активных сессий начиная с сегодняшнего дня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/availability/{day} - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	day, err := handlers.PathInt(r, "day")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/availability/{day} - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	slots, err := h.service.GetReconciledAvailability(r.Context(), trainerID, day)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/availability/{day} - Invalid input: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("GET /trainers/{id}/availability/{day} - Failed to reconcile: trainer_id=%d, day=%d, error=%v",
				trainerID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.NewDayResponse(trainerID, day, slots))
}
