package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig параметры публикации событий
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// KafkaPublisher публикует события о записях в Kafka.
// Ключ сообщения ID сотрудника: события одного сотрудника попадают в одну партицию по порядку.
type KafkaPublisher struct {
	writer       messageWriter
	topic        string
	writeTimeout time.Duration
}

// NewKafkaPublisher создает издателя поверх kafka.Writer
func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}
	return newKafkaPublisher(writer, cfg.Topic, cfg.WriteTimeout)
}

func newKafkaPublisher(writer messageWriter, topic string, writeTimeout time.Duration) *KafkaPublisher {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: writer, topic: topic, writeTimeout: writeTimeout}
}

// Topic топик, в который пишутся события
func (p *KafkaPublisher) Topic() string {
	return p.topic
}

// PublishAppointmentBooked публикует событие о созданной записи
func (p *KafkaPublisher) PublishAppointmentBooked(ctx context.Context, event AppointmentBooked) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: appointment=%s: %v", ErrMarshal, event.AppointmentID, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EmployeeID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(EventTypeAppointmentBooked)},
		},
	}
	msg.Headers = injectTraceHeaders(ctx, msg.Headers)

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s appointment=%s: %v", ErrPublish, p.topic, event.AppointmentID, err)
	}
	return nil
}

// Close дожидается отправки буферизованных сообщений и закрывает соединения
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда публикация событий выключена
type NoopPublisher struct{}

func (NoopPublisher) PublishAppointmentBooked(context.Context, AppointmentBooked) error { return nil }

func (NoopPublisher) Topic() string { return "" }

func (NoopPublisher) Close() error { return nil }
