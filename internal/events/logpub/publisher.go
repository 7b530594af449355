// Package logpub is the default event sink when no broker is configured:
// events go to the process log instead of Kafka.
package logpub

import (
	"encoding/json"
	"log"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/interfaces"
)

type Publisher struct{}

func NewPublisher() *Publisher { return &Publisher{} }

func (p *Publisher) Publish(topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	log.Printf("event %s: %s", topic, data)
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
