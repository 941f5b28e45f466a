package notifier

import (
	"context"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// Sink получатель уведомлений клиентам
type Sink interface {
	Notify(ctx context.Context, n *domain.Notification) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
