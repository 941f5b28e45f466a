package validate_session

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	validateSession "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
)

type ValidateSessionUseCase interface {
	Execute(ctx context.Context, req *validateSession.Request) (*domain.ValidationVerdict, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
