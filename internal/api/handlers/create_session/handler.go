package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные сессии"
	msgClientNotFound     = "клиент не найден"
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

// Handle POST /api/v1/trainers/{trainerId}/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(trainerID)
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateSession(r.Context(), serviceReq)
	if err != nil {
		var validationErr *sessions.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /trainers/{id}/sessions - Rejected: trainer_id=%d, client_id=%d, errors=%v",
				trainerID, req.ClientID, validationErr.Verdict.Errors)
			handlers.RespondJSON(w, http.StatusConflict, models.FromDomainVerdict(validationErr.Verdict))

		case errors.Is(err, sessions.ErrInvalidTime):
			h.logger.Warn("POST /trainers/{id}/sessions - Invalid time: start=%s, end=%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/sessions - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sessions.ErrClientNotFound):
			h.logger.Warn("POST /trainers/{id}/sessions - Client not found: client_id=%d", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("POST /trainers/{id}/sessions - Failed to create session: trainer_id=%d, client_id=%d, error=%v",
				trainerID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/sessions - Session created: session_id=%d, trainer_id=%d, client_id=%d",
		result.Session.ID, trainerID, req.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
