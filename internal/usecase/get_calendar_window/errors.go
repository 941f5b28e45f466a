package get_calendar_window

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar_window: invalid input data")

	// ErrInvalidMode возвращается при неизвестном режиме окна
	ErrInvalidMode = errors.New("get_calendar_window: mode must be week or month")

	// ErrInvalidNav возвращается при неизвестной навигации
	ErrInvalidNav = errors.New("get_calendar_window: nav must be next, previous or today")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar_window: internal error")
)
