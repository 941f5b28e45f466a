package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("availability: invalid time format")

	// ErrInvalidInterval возвращается, когда конец интервала не позже начала
	ErrInvalidInterval = errors.New("availability: interval end must be after start")

	// ErrSlotOverlap возвращается, когда доступный интервал пересекается с другим доступным интервалом дня
	ErrSlotOverlap = errors.New("availability: slot overlaps another available slot")

	// ErrSlotIndexOutOfRange возвращается при обращении к несуществующему интервалу дня
	ErrSlotIndexOutOfRange = errors.New("availability: slot index out of range")

	// ErrTooManySlots возвращается при превышении количества интервалов в дне
	ErrTooManySlots = errors.New("availability: too many slots for one day")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
