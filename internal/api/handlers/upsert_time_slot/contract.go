package upsert_time_slot

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpsertTimeSlot(ctx context.Context, req *models.UpsertSlotRequest) ([]domain.AvailabilitySlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
