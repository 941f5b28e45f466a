package approve_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidRequestID = "некорректный ID заявки"
	msgNotFound         = "заявка не найдена"
	msgNotPending       = "заявка уже рассмотрена"
	msgInvalidInput     = "некорректные данные заявки"
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

// Handle POST /api/v1/trainers/{trainerId}/requests/{requestId}/approve
// Конфликт с расписанием возвращается как 409 с вердиктом проверки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/requests/{id}/approve - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/requests/{id}/approve - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.service.ApproveRequest(r.Context(), trainerID, requestID)
	if err != nil {
		var validationErr *sessions.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/approve - Rejected: request_id=%d, errors=%v",
				requestID, validationErr.Verdict.Errors)
			handlers.RespondJSON(w, http.StatusConflict, models.FromDomainVerdict(validationErr.Verdict))

		case errors.Is(err, sessions.ErrRequestNotFound):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/approve - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrRequestNotPending):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/approve - Request not pending: request_id=%d", requestID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, sessions.ErrInvalidInput), errors.Is(err, sessions.ErrInvalidTime):
			h.logger.Warn("POST /trainers/{id}/requests/{id}/approve - Invalid request data: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /trainers/{id}/requests/{id}/approve - Failed to approve: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/requests/{id}/approve - Request approved: request_id=%d, session_id=%d",
		requestID, result.Session.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
