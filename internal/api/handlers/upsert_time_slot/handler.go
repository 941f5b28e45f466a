package upsert_time_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidDay         = "некорректный день недели, ожидается 0 (воскресенье) - 6 (суббота)"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInterval    = "конец интервала должен быть позже начала"
	msgSlotOverlap        = "интервал пересекается с другим доступным интервалом дня"
	msgIndexOutOfRange    = "интервал с таким индексом не найден"
	msgTooManySlots       = "слишком много интервалов в одном дне"
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

// Handle PUT /api/v1/trainers/{trainerId}/availability/{day}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	day, err := handlers.PathInt(r, "day")
	if err != nil {
		h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	var req UpsertSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slots, err := h.service.UpsertTimeSlot(r.Context(), req.ToServiceRequest(trainerID, day))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidTime):
			h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Invalid time: trainer_id=%d, start=%s, end=%s",
				trainerID, req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, availability.ErrInvalidInterval):
			h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Invalid interval: trainer_id=%d, start=%s, end=%s",
				trainerID, req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Invalid input: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, availability.ErrSlotIndexOutOfRange):
			h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Index out of range: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondNotFound(w, msgIndexOutOfRange)

		case errors.Is(err, availability.ErrSlotOverlap):
			h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Overlap: trainer_id=%d, day=%d, start=%s, end=%s",
				trainerID, day, req.Start, req.End)
			handlers.RespondConflict(w, msgSlotOverlap)

		case errors.Is(err, availability.ErrTooManySlots):
			h.logger.Warn("PUT /trainers/{id}/availability/{day}/slots - Too many slots: trainer_id=%d, day=%d", trainerID, day)
			handlers.RespondBadRequest(w, msgTooManySlots)

		default:
			h.logger.Error("PUT /trainers/{id}/availability/{day}/slots - Failed to upsert slot: trainer_id=%d, day=%d, error=%v",
				trainerID, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /trainers/{id}/availability/{day}/slots - Slot saved: trainer_id=%d, day=%d, %s-%s",
		trainerID, day, req.Start, req.End)
	handlers.RespondJSON(w, http.StatusOK, models.NewDayResponse(trainerID, day, slots))
}
