package ledger

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/interfaces"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/models"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/models/events"
)

// Bank is the registry mapping user identifiers to accounts. It owns every
// account for the life of the process; no operation removes one. It also fans
// each committed record out to an optional journal and event publisher.
type Bank struct {
	mu       sync.RWMutex
	accounts map[string]*Account

	journal   interfaces.TransactionJournal
	publisher interfaces.EventPublisher
	topic     string
}

// NewBank builds an empty registry. journal and publisher may both be nil;
// the registry then keeps per-account histories only.
func NewBank(journal interfaces.TransactionJournal, publisher interfaces.EventPublisher, topic string) *Bank {
	return &Bank{
		accounts:  make(map[string]*Account),
		journal:   journal,
		publisher: publisher,
		topic:     topic,
	}
}

// Register adds an account under its user ID. A duplicate ID is rejected with
// ErrDuplicateAccount rather than silently replacing the existing account.
// The sink is attached after the registry lock is released; a slow journal or
// broker must not stall concurrent lookups.
func (b *Bank) Register(a *Account) error {
	b.mu.Lock()
	if _, exists := b.accounts[a.userID]; exists {
		b.mu.Unlock()
		return ErrDuplicateAccount
	}
	b.accounts[a.userID] = a
	b.mu.Unlock()

	a.attach(b.record)
	return nil
}

// Open creates an account and registers it in one step.
func (b *Bank) Open(userID, pin string, opening decimal.Decimal) (*Account, error) {
	a, err := NewAccount(userID, pin, opening)
	if err != nil {
		return nil, err
	}
	if err := b.Register(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Find resolves a user ID to its account. A miss is ErrAccountNotFound; the
// registry never fabricates an account.
func (b *Bank) Find(userID string) (*Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.accounts[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a, nil
}

// record is the sink installed on every registered account. It runs outside
// the account locks, after the mutation has committed; journal and publish
// failures are logged and swallowed because the account history is the
// authoritative state.
func (b *Bank) record(accountID string, tx models.Transaction) {
	if b.journal != nil {
		if err := b.journal.Record(context.Background(), accountID, tx); err != nil {
			log.Printf("journal record for account %s: %v", accountID, err)
		}
	}
	if b.publisher != nil {
		ev := events.TransactionRecorded{
			TransactionID: tx.ID,
			AccountID:     accountID,
			Kind:          string(tx.Kind),
			Amount:        tx.Amount,
			Detail:        tx.Detail,
			OccurredAt:    tx.RecordedAt,
		}
		if err := b.publisher.Publish(b.topic, ev); err != nil {
			log.Printf("publish transaction event %s: %v", tx.ID, err)
		}
	}
}
