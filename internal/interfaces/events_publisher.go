package interfaces

// EventPublisher pushes ledger events to some downstream consumer.
// Publishing is best-effort: a failed publish never undoes a committed
// ledger mutation.
type EventPublisher interface {
	Publish(topic string, event any) error
}
