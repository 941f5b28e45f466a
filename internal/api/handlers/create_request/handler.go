package create_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные заявки"
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

// Handle POST /api/v1/trainers/{trainerId}/requests
// Заявку отправляет клиент, тренер рассматривает ее во входящих
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/requests - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /trainers/{id}/requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(trainerID, clientID)
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/requests - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	request, err := h.service.CreateRequest(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidTime):
			h.logger.Warn("POST /trainers/{id}/requests - Invalid time: start=%s, end=%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/requests - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /trainers/{id}/requests - Failed to create request: trainer_id=%d, client_id=%d, error=%v",
				trainerID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/requests - Request created: request_id=%d, trainer_id=%d, client_id=%d",
		request.ID, trainerID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, request)
}
