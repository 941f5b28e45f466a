package validate_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_session: invalid input data")

	// ErrInvalidTime возвращается при некорректном формате времени (HH:MM)
	ErrInvalidTime = errors.New("validate_session: invalid time format")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_session: internal error")
)
