package decline_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректная причина отказа"
	msgNotFound           = "заявка не найдена"
	msgNotPending         = "заявка уже рассмотрена"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/trainers/{trainerId}/requests/{requestId}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/requests/{id}/decline - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/requests/{id}/decline - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req DeclineRequestRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/requests/{id}/decline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	request, err := h.service.DeclineRequest(r.Context(), trainerID, requestID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrRequestNotFound):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/decline - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrRequestNotPending):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/decline - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/decline - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /trainers/{id}/requests/{id}/decline - Failed to decline: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/requests/{id}/decline - Request declined: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusOK, request)
}
