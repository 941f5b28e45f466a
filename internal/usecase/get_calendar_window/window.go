package get_calendar_window

import (
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// navigate сдвигает опорную дату на одно окно или возвращает её к сегодняшнему дню
func navigate(anchor, today time.Time, mode domain.CalendarMode, nav domain.CalendarNav) time.Time {
	switch nav {
	case domain.NavToday:
		return today
	case domain.NavNext:
		return shift(anchor, mode, 1)
	case domain.NavPrevious:
		return shift(anchor, mode, -1)
	default:
		return anchor
	}
}

// shift на n окон; для месяца опорной датой становится 1-е число,
// иначе 31 января + 1 месяц дало бы 2 марта
func shift(anchor time.Time, mode domain.CalendarMode, n int) time.Time {
	if mode == domain.CalendarMonth {
		return time.Date(anchor.Year(), anchor.Month()+time.Month(n), 1, 0, 0, 0, 0, anchor.Location())
	}
	return anchor.AddDate(0, 0, n*domain.DaysPerWeek)
}

// bounds первая и последняя дата окна
// Неделя начинается с воскресенья на или до опорной даты, месяц - с 1-го числа
func bounds(anchor time.Time, mode domain.CalendarMode) (time.Time, time.Time) {
	if mode == domain.CalendarMonth {
		from := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return from, from.AddDate(0, 1, -1)
	}

	from := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	return from, from.AddDate(0, 0, domain.DaysPerWeek-1)
}

func parseMode(mode domain.CalendarMode) (domain.CalendarMode, error) {
	switch mode {
	case "":
		return domain.CalendarWeek, nil
	case domain.CalendarWeek, domain.CalendarMonth:
		return mode, nil
	}
	return "", ErrInvalidMode
}

func parseNav(nav domain.CalendarNav) error {
	switch nav {
	case domain.NavNone, domain.NavNext, domain.NavPrevious, domain.NavToday:
		return nil
	}
	return ErrInvalidNav
}
