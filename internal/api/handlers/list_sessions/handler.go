package list_sessions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidFrom      = "некорректный формат параметра from, ожидается YYYY-MM-DD"
	msgInvalidTo        = "некорректный формат параметра to, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректный фильтр сессий"
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

// Handle GET /api/v1/trainers/{trainerId}/sessions
// Query params: from, to (YYYY-MM-DD, опционально), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/sessions - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	query := r.URL.Query()
	req := &models.ListSessionsRequest{TrainerID: trainerID}

	if raw := query.Get("from"); raw != "" {
		from, err := domain.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/sessions - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := domain.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/sessions - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		req.EndDate = &to
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	resp, err := h.service.ListSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/sessions - Invalid filter: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /trainers/{id}/sessions - Failed to list sessions: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
