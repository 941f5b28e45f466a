package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// TemplateRepository интерфейс репозитория недельного шаблона
type TemplateRepository interface {
	GetByTrainer(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error)
	GetByDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error)
	ReplaceDay(ctx context.Context, trainerID int64, dayOfWeek int, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error)
}

// SnapshotCache кэш пересчитанной доступности по дню недели
type SnapshotCache interface {
	Get(ctx context.Context, trainerID int64, dayOfWeek int, today time.Time) ([]domain.AvailabilitySlot, bool, error)
	Set(ctx context.Context, trainerID int64, dayOfWeek int, today time.Time, slots []domain.AvailabilitySlot) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker сериализует изменения расписания одного тренера
type Locker interface {
	Lock(key int64) (unlock func())
}

// Metrics доменные метрики
type Metrics interface {
	ObserveReconciliation(scope string, duration time.Duration)
	ObserveCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
