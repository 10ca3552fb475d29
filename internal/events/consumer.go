package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// EnvelopeHandler processes one decoded shop event.
type EnvelopeHandler func(ctx context.Context, env Envelope) error

// Consumer reads event envelopes from a Kafka topic. Messages that
// fail to decode or whose handler errors are logged and skipped; the
// consumer never stops on a bad message.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

func (c *Consumer) Consume(ctx context.Context, handler EnvelopeHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("[Events] Error reading message: %v", err)
				continue
			}

			var env Envelope
			if err := json.Unmarshal(msg.Value, &env); err != nil {
				log.Printf("[Events] Skipping undecodable message: %v", err)
				continue
			}

			if err := handler(ctx, env); err != nil {
				log.Printf("[Events] Error handling %s event: %v", env.Type, err)
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
