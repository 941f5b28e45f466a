package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
	"github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/validate_session"
	"github.com/m04kA/SMC-TrainerScheduleService/pkg/types"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByFilter(ctx context.Context, filter domain.SessionsFilter) ([]*domain.Session, error)
	Reschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error
	UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus) error
	Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error
}

// RequestRepository интерфейс репозитория заявок клиентов
type RequestRepository interface {
	Create(ctx context.Context, req *domain.SessionRequest) (*domain.SessionRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error)
	GetByTrainer(ctx context.Context, trainerID int64, status *domain.RequestStatus) ([]*domain.SessionRequest, error)
	MarkApproved(ctx context.Context, id int64, sessionID int64) error
	MarkDeclined(ctx context.Context, id int64, reason *string) error
}

// Validator проверка предлагаемого интервала на конфликты
type Validator interface {
	Execute(ctx context.Context, req *validate_session.Request) (*domain.ValidationVerdict, error)
}

// AvailabilityRefresher пересчёт доступности после изменения набора сессий
type AvailabilityRefresher interface {
	Refresh(ctx context.Context, trainerID int64, days ...int) error
}

// Notifier отправка уведомлений клиентам
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetClientName(ctx context.Context, tgUserID int64) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker сериализует изменения расписания одного тренера
type Locker interface {
	Lock(key int64) (unlock func())
}

// Metrics метрики переходов и уведомлений
type Metrics interface {
	ObserveTransition(operation string, err error)
	ObserveNotification(kind string, err error)
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
