package events

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// messageWriter *kafka.Writer
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
