package availability

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// MemoryCache снимки в памяти процесса, используется когда Redis выключен
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]domain.AvailabilitySlot
	day     string
}

// NewMemoryCache создает пустой кэш
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]domain.AvailabilitySlot),
	}
}

func (c *MemoryCache) Get(_ context.Context, trainerID int64, dayOfWeek int, today time.Time) ([]domain.AvailabilitySlot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	slots, ok := c.entries[key(trainerID, dayOfWeek, today)]
	if !ok {
		return nil, false, nil
	}
	return cloneSlots(slots), true, nil
}

func (c *MemoryCache) Set(_ context.Context, trainerID int64, dayOfWeek int, today time.Time, slots []domain.AvailabilitySlot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Снимки предыдущих дней больше не нужны
	if day := today.Format(domain.DateFormat); day != c.day {
		c.entries = make(map[string][]domain.AvailabilitySlot)
		c.day = day
	}

	c.entries[key(trainerID, dayOfWeek, today)] = cloneSlots(slots)
	return nil
}

// Len количество снимков
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneSlots(slots []domain.AvailabilitySlot) []domain.AvailabilitySlot {
	if slots == nil {
		return nil
	}
	out := make([]domain.AvailabilitySlot, len(slots))
	copy(out, slots)
	return out
}
