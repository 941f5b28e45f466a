package remove_time_slot

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
	msgInvalidIndex     = "некорректный индекс интервала"
	msgIndexOutOfRange  = "интервал с таким индексом не найден"
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

// Handle DELETE /api/v1/trainers/{trainerId}/availability/{day}/slots/{index}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/availability/{day}/slots/{index} - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	day, err := handlers.PathInt(r, "day")
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/availability/{day}/slots/{index} - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	index, err := handlers.PathInt(r, "index")
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/availability/{day}/slots/{index} - Invalid index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidIndex)
		return
	}

	slots, err := h.service.RemoveTimeSlot(r.Context(), trainerID, day, index)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /trainers/{id}/availability/{day}/slots/{index} - Invalid day: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, availability.ErrSlotIndexOutOfRange):
			h.logger.Warn("DELETE /trainers/{id}/availability/{day}/slots/{index} - Index out of range: trainer_id=%d, day=%d, index=%d",
				trainerID, day, index)
			handlers.RespondNotFound(w, msgIndexOutOfRange)

		default:
			h.logger.Error("DELETE /trainers/{id}/availability/{day}/slots/{index} - Failed to remove slot: trainer_id=%d, day=%d, error=%v",
				trainerID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /trainers/{id}/availability/{day}/slots/{index} - Slot removed: trainer_id=%d, day=%d, index=%d",
		trainerID, day, index)
	handlers.RespondJSON(w, http.StatusOK, models.NewDayResponse(trainerID, day, slots))
}
