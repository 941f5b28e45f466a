package userservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент неизвестен UserService
	ErrClientNotFound = errors.New("userservice client: client not found")

	// ErrRequest возвращается, когда запрос не удалось выполнить
	ErrRequest = errors.New("userservice client: request failed")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded UserService недоступен, имя клиента остаётся пустым
	ErrServiceDegraded = errors.New("userservice client: service degraded")
)
