package toggle_day_availability

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
	msgSlotOverlap      = "интервалы дня пересекаются"
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

// Handle POST /api/v1/trainers/{trainerId}/availability/{day}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/availability/{day}/toggle - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	day, err := handlers.PathInt(r, "day")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/availability/{day}/toggle - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	slots, err := h.service.ToggleDayAvailability(r.Context(), trainerID, day)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/availability/{day}/toggle - Invalid day: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, availability.ErrSlotOverlap):
			h.logger.Warn("POST /trainers/{id}/availability/{day}/toggle - Overlapping slots: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondConflict(w, msgSlotOverlap)

		default:
			h.logger.Error("POST /trainers/{id}/availability/{day}/toggle - Failed to toggle: trainer_id=%d, day=%d, error=%v",
				trainerID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/availability/{day}/toggle - Day toggled: trainer_id=%d, day=%d, slots=%d",
		trainerID, day, len(slots))
	handlers.RespondJSON(w, http.StatusOK, models.NewDayResponse(trainerID, day, slots))
}
