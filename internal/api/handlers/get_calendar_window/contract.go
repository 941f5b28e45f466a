package get_calendar_window

import (
	"context"

	getCalendarWindow "github.com/m04kA/SMC-TrainerScheduleService/internal/usecase/get_calendar_window"
)

type GetCalendarWindowUseCase interface {
	Execute(ctx context.Context, req *getCalendarWindow.Request) (*getCalendarWindow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
