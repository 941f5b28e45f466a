package get_calendar_window

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// TemplateRepository интерфейс репозитория недельного шаблона
type TemplateRepository interface {
	GetByTrainer(ctx context.Context, trainerID int64) ([]domain.AvailabilitySlot, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error)
}

// Metrics метрики пересчёта
type Metrics interface {
	ObserveReconciliation(scope string, duration time.Duration)
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
