package validate_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// TemplateRepository интерфейс репозитория недельного шаблона
type TemplateRepository interface {
	GetByDay(ctx context.Context, trainerID int64, dayOfWeek int) ([]domain.AvailabilitySlot, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error)
}

// Metrics метрики вердиктов
type Metrics interface {
	ObserveVerdict(isValid bool)
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
