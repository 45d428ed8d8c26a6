// Package kafka publishes order events to a Kafka topic. Messages are keyed by
// order id so all events of one order land on the same partition in order.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements ports.OrderEventPublisher.
type Producer struct {
	w messageWriter
}

// NewProducer connects to the comma separated brokers and writes to topic.
func NewProducer(brokers, topic string) (*Producer, error) {
	if strings.TrimSpace(brokers) == "" {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	return NewProducerWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		Async:        false,
	})
}

// NewProducerWithWriter wraps an already configured writer.
func NewProducerWithWriter(w messageWriter) (*Producer, error) {
	if w == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	return &Producer{w: w}, nil
}

// Publish writes events synchronously. Either the whole batch is acknowledged
// or an error is returned and the caller retries the batch later.
func (p *Producer) Publish(ctx context.Context, events []order.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := newMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d order events: %w", len(msgs), err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// message is the JSON value of every published event.
type message struct {
	EventID    uuid.UUID   `json:"eventId"`
	Type       string      `json:"type"`
	OrderID    uuid.UUID   `json:"orderId"`
	BuyerID    uuid.UUID   `json:"buyerId"`
	ProductIDs []uuid.UUID `json:"productIds"`
	OccurredAt time.Time   `json:"occurredAt"`
}

var errEventWithoutOrder = errors.New("order event has no order id")

func newMessage(event order.Event) (kafka.Message, error) {
	if err := event.OrderID.Validate(); err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %w", errEventWithoutOrder, err)
	}

	productIDs := make([]uuid.UUID, 0, len(event.ProductIDs))
	for _, id := range event.ProductIDs {
		productIDs = append(productIDs, id.Bytes())
	}

	value, err := json.Marshal(message{
		EventID:    event.ID.Bytes(),
		Type:       string(event.Type),
		OrderID:    event.OrderID.Bytes(),
		BuyerID:    event.BuyerID.Bytes(),
		ProductIDs: productIDs,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
