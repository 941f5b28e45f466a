// Package notifier доставляет уведомления клиентам о решениях по заявкам и изменениях сессий.
// Отправка не блокирует операцию: ошибки логируются вызывающим кодом и не откатывают изменения.
package notifier

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// Драйверы
const (
	DriverNone     = "none"
	DriverLog      = "log"
	DriverRabbitMQ = "rabbitmq"
	DriverKafka    = "kafka"
)

// Config настройки доставки уведомлений
type Config struct {
	Driver   string
	RabbitMQ RabbitMQConfig
	Kafka    KafkaConfig
}

// RabbitMQConfig очередь RabbitMQ
type RabbitMQConfig struct {
	URL   string
	Queue string
}

// KafkaConfig топик Kafka
type KafkaConfig struct {
	Brokers string // "host1:9092,host2:9092"
	Topic   string
}

// New создает получателя по имени драйвера
// Для "none" возвращается nil: сервис сессий пропускает отправку
func New(cfg Config, log Logger) (Sink, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverNone:
		return nil, nil
	case DriverLog:
		return NewLogSink(log), nil
	case DriverRabbitMQ:
		return NewRabbitMQSink(cfg.RabbitMQ, log)
	case DriverKafka:
		return NewKafkaSink(cfg.Kafka, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

func encode(n *domain.Notification) ([]byte, error) {
	body, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return body, nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
