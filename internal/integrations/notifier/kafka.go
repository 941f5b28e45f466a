package notifier

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

const defaultTopic = "trainer.notifications"

// KafkaSink публикует уведомления в топик асинхронно
// Ключ сообщения - ID клиента: события одного клиента попадают в одну партицию по порядку
type KafkaSink struct {
	writer *kafka.Writer
	log    Logger
}

// NewKafkaSink создает асинхронный writer; подключение к брокерам ленивое
func NewKafkaSink(cfg KafkaConfig, log Logger) (*KafkaSink, error) {
	brokers := SplitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("%w: no kafka brokers configured", ErrConnect)
	}
	if cfg.Topic == "" {
		cfg.Topic = defaultTopic
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Kafka notifier: failed to deliver %d messages: %v", len(messages), err)
			}
		},
	}

	log.Info("Kafka notifier configured, brokers=%v, topic=%s", brokers, cfg.Topic)
	return &KafkaSink{writer: writer, log: log}, nil
}

func (s *KafkaSink) Notify(ctx context.Context, n *domain.Notification) error {
	msg, err := toMessage(ctx, n)
	if err != nil {
		return err
	}

	// В асинхронном режиме ошибка доставки приходит в Completion
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func toMessage(ctx context.Context, n *domain.Notification) (kafka.Message, error) {
	body, err := encode(n)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(n.ClientID, 10)),
		Value: body,
		Time:  n.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(n.ID.String())},
			{Key: "event_type", Value: []byte("notification." + string(n.Kind))},
		},
	}

	carrier := &headerCarrier{headers: msg.Headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	msg.Headers = carrier.headers

	return msg, nil
}

// headerCarrier заголовки Kafka как носитель W3C trace context
type headerCarrier struct {
	headers []kafka.Header
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
