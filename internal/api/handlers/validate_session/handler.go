package validate_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
	validateSession "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные параметры проверки"
)

type Handler struct {
	useCase ValidateSessionUseCase
	logger  Logger
}

func NewHandler(useCase ValidateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/trainers/{trainerId}/sessions/validate
// Вердикт возвращается со статусом 200 и при наличии ошибок: проверка ничего не меняет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	trainerID, err := handlers.PathInt64(r, "trainerId")
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/validate - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	var req ValidateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(trainerID)
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/sessions/validate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	verdict, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateSession.ErrInvalidTime):
			h.logger.Warn("POST /trainers/{id}/sessions/validate - Invalid time: start=%s, end=%s", req.Start, req.End)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, validateSession.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/sessions/validate - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /trainers/{id}/sessions/validate - Failed to validate: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainVerdict(verdict))
}
