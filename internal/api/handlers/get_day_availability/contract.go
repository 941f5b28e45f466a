package get_day_availability

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

type AvailabilityService interface {
	GetReconciledAvailability(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
