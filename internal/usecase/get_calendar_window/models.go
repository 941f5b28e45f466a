package get_calendar_window

import (
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// Request модель запроса окна календаря
type Request struct {
	TrainerID int64               // ID тренера
	Anchor    time.Time           // Опорная дата; нулевая - сегодня
	Mode      domain.CalendarMode // week (по умолчанию) или month
	Nav       domain.CalendarNav  // Сдвиг опорной даты перед построением окна
}

// Response модель окна календаря
type Response struct {
	TrainerID  int64
	Mode       domain.CalendarMode
	Anchor     time.Time // Опорная дата после навигации
	From       time.Time // Первая дата окна
	To         time.Time // Последняя дата окна включительно
	PrevAnchor time.Time
	NextAnchor time.Time
	Days       []domain.DayProjection
}
