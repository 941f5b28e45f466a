package cancel_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректная причина отмены"
	msgNotFound           = "сессия не найдена"
	msgCannotCancel       = "сессия не может быть отменена"
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

// Handle POST /api/v1/trainers/{trainerId}/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/cancel - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/cancel - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req CancelSessionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.CancelSession(r.Context(), trainerID, sessionID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/cancel - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrCannotCancel):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/cancel - Cannot cancel: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/cancel - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /trainers/{id}/sessions/{id}/cancel - Failed to cancel session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/sessions/{id}/cancel - Session cancelled: session_id=%d, trainer_id=%d",
		sessionID, trainerID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
