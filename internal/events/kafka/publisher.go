package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/interfaces"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/models/events"
)

// Publisher writes ledger events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher connects a writer to the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish serialises the event as JSON. Events carrying an account ID use it
// as the message key so one account's events stay in partition order.
func (p *Publisher) Publish(_ string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{Value: data}
	if tr, ok := event.(events.TransactionRecorded); ok {
		msg.Key = []byte(tr.AccountID)
	}

	return p.writer.WriteMessages(context.Background(), msg)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
