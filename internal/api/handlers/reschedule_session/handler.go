package reschedule_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные переноса"
	msgNotFound           = "сессия не найдена"
	msgCannotReschedule   = "сессия не может быть перенесена"
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

// Handle POST /api/v1/trainers/{trainerId}/sessions/{sessionId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req RescheduleSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(trainerID, sessionID)
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.RescheduleSession(r.Context(), serviceReq)
	if err != nil {
		var validationErr *sessions.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Rejected: session_id=%d, errors=%v",
				sessionID, validationErr.Verdict.Errors)
			handlers.RespondJSON(w, http.StatusConflict, models.FromDomainVerdict(validationErr.Verdict))

		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrCannotReschedule):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Cannot reschedule: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, sessions.ErrInvalidTime):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Invalid time: start=%s, end=%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/reschedule - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /trainers/{id}/sessions/{id}/reschedule - Failed to reschedule: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/sessions/{id}/reschedule - Session moved: session_id=%d, %s %s-%s",
		sessionID, req.Date, req.Start, req.End)
	handlers.RespondJSON(w, http.StatusOK, result)
}
