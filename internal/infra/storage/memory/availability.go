package memory

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// AvailabilityRepository шаблон доступности в памяти
type AvailabilityRepository struct {
	store *Store
}

func NewAvailabilityRepository(store *Store) *AvailabilityRepository {
	return &AvailabilityRepository{store: store}
}

func (r *AvailabilityRepository) GetByTrainer(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := append([]domain.AvailabilitySlot{}, r.store.slots[trainerID]...)
	sortSlots(result)
	return result, nil
}

func (r *AvailabilityRepository) GetByDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.AvailabilitySlot, 0)
	for _, s := range r.store.slots[trainerID] {
		if s.DayOfWeek == dayOfWeek {
			result = append(result, s)
		}
	}
	sortSlots(result)
	return result, nil
}

func (r *AvailabilityRepository) ReplaceDay(ctx context.Context, trainerID int64, dayOfWeek int, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.rememberSlots(ctx, trainerID)

	kept := make([]domain.AvailabilitySlot, 0, len(r.store.slots[trainerID])+len(slots))
	for _, s := range r.store.slots[trainerID] {
		if s.DayOfWeek != dayOfWeek {
			kept = append(kept, s)
		}
	}

	inserted := make([]domain.AvailabilitySlot, len(slots))
	for i, s := range slots {
		r.store.nextSlotID++
		s.ID = r.store.nextSlotID
		s.TrainerID = trainerID
		s.DayOfWeek = dayOfWeek
		s.IsBooked = false
		s.SessionID = nil
		inserted[i] = s
	}

	r.store.slots[trainerID] = append(kept, inserted...)
	return inserted, nil
}
