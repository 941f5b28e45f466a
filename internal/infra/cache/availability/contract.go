package availability

import "github.com/m04kA/SMC-TrainerScheduleService/internal/domain"

// snapshot запись кэша: пересчитанные интервалы одного дня недели
type snapshot struct {
	Slots []domain.AvailabilitySlot `json:"slots"`
}
