package get_availability_template

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

type AvailabilityService interface {
	GetTemplate(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
