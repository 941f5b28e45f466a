package approve_request

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

type SessionService interface {
	ApproveRequest(ctx context.Context, trainerID, requestID int64) (*models.ApproveResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
