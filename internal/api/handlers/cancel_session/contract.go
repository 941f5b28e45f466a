package cancel_session

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/sessions/models"
)

type SessionService interface {
	CancelSession(ctx context.Context, trainerID, sessionID int64, reason *string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
