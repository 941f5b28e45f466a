package complete_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidSessionID = "некорректный ID сессии"
	msgNotFound         = "сессия не найдена"
	msgCannotComplete   = "завершить можно только подтвержденную сессию"
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

// Handle POST /api/v1/trainers/{trainerId}/sessions/{sessionId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/complete - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	sessionID, err := handlers.PathInt64(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/{id}/complete - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	session, err := h.service.CompleteSession(r.Context(), trainerID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/complete - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrCannotComplete):
			h.logger.Warn("POST /trainers/{id}/sessions/{id}/complete - Cannot complete: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("POST /trainers/{id}/sessions/{id}/complete - Failed to complete session: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/sessions/{id}/complete - Session completed: session_id=%d", sessionID)
	handlers.RespondJSON(w, http.StatusOK, session)
}
