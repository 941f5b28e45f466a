package notifier

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

const defaultQueue = "trainer.notifications"

// RabbitMQSink публикует уведомления в устойчивую очередь
// Соединение и канал открываются один раз и переоткрываются после разрыва
type RabbitMQSink struct {
	url   string
	queue string
	log   Logger

	mu   sync.Mutex // канал AMQP нельзя использовать из нескольких горутин
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitMQSink подключается к брокеру и объявляет очередь
func NewRabbitMQSink(cfg RabbitMQConfig, log Logger) (*RabbitMQSink, error) {
	if cfg.Queue == "" {
		cfg.Queue = defaultQueue
	}

	s := &RabbitMQSink{
		url:   cfg.URL,
		queue: cfg.Queue,
		log:   log,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.connect(); err != nil {
		return nil, err
	}

	log.Info("RabbitMQ notifier connected, queue=%s", cfg.Queue)
	return s, nil
}

// connect вызывается под s.mu
func (s *RabbitMQSink) connect() error {
	conn, err := amqp.Dial(s.url)
	if err != nil {
		return fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: channel: %v", ErrConnect, err)
	}

	// Очередь устойчивая, чтобы уведомления пережили перезапуск брокера
	if _, err := ch.QueueDeclare(
		s.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: queue declare: %v", ErrConnect, err)
	}

	s.conn, s.ch = conn, ch
	return nil
}

func (s *RabbitMQSink) Notify(ctx context.Context, n *domain.Notification) error {
	body, err := encode(n)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil || s.conn.IsClosed() || s.ch == nil || s.ch.IsClosed() {
		s.log.Warn("RabbitMQ notifier: connection lost, reconnecting")
		if err := s.connect(); err != nil {
			return err
		}
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.ID.String(),
		Type:         string(n.Kind),
		Timestamp:    n.CreatedAt.UTC(),
		Body:         body,
	}

	if err := s.ch.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

func (s *RabbitMQSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
