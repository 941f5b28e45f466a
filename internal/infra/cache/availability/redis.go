package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

const keyPrefix = "schedule:availability"

// RedisCache снимки пересчитанной доступности в Redis
// Дата входит в ключ, поэтому снимок прошлого дня никогда не читается, а TTL его удаляет
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache создает кэш поверх клиента Redis
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get возвращает снимок, ok=false при промахе
func (c *RedisCache) Get(ctx context.Context, trainerID int64, dayOfWeek int, today time.Time) ([]domain.AvailabilitySlot, bool, error) {
	raw, err := c.client.Get(ctx, key(trainerID, dayOfWeek, today)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: Get - GET: %v", ErrRedis, err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}

	return snap.Slots, true, nil
}

// Set перезаписывает снимок
func (c *RedisCache) Set(ctx context.Context, trainerID int64, dayOfWeek int, today time.Time, slots []domain.AvailabilitySlot) error {
	raw, err := json.Marshal(snapshot{Slots: slots})
	if err != nil {
		return fmt.Errorf("%w: Set: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, key(trainerID, dayOfWeek, today), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - SET: %v", ErrRedis, err)
	}

	return nil
}

func key(trainerID int64, dayOfWeek int, today time.Time) string {
	return fmt.Sprintf("%s:%d:%d:%s", keyPrefix, trainerID, dayOfWeek, today.Format(domain.DateFormat))
}
