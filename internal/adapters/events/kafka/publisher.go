package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SscSPs/hrms_ledger/internal/core/ports/events"
)

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends ledger events to Kafka as JSON.
type Publisher struct {
	writer messageWriter
}

var _ events.Publisher = (*Publisher)(nil)

// NewPublisher creates a publisher writing to topic on brokers.
// An empty topic falls back to events.TransactionCreatedTopic.
func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = events.TransactionCreatedTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// PublishTransactionCreated implements events.Publisher. The transaction id is the
// message key so events for one transaction stay on one partition.
func (p *Publisher) PublishTransactionCreated(ctx context.Context, event events.TransactionCreated) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode transaction created event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.TransactionID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(events.TransactionCreatedTopic)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish transaction %d: %w", event.TransactionID, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
