package notifier

import "errors"

var (
	// ErrUnknownDriver возвращается при неизвестном драйвере уведомлений
	ErrUnknownDriver = errors.New("notifier: unknown driver")

	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrEncode возвращается при ошибке сериализации уведомления
	ErrEncode = errors.New("notifier: failed to encode notification")

	// ErrPublish возвращается при ошибке публикации
	ErrPublish = errors.New("notifier: failed to publish notification")
)
