package memory

import (
	"context"
	"sync"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/interfaces"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/models"
)

// Journal is the in-memory implementation of interfaces.TransactionJournal.
// It keeps every committed record across all accounts, in arrival order, and
// is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	entries []entry
}

type entry struct {
	accountID string
	tx        models.Transaction
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{entries: make([]entry, 0)}
}

// Record appends a committed record. It never fails in memory.
func (j *Journal) Record(_ context.Context, accountID string, tx models.Transaction) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry{accountID: accountID, tx: tx})
	return nil
}

// EntriesByAccount returns the records committed against one account, in
// order. The result is a copy; callers cannot reach internal state.
func (j *Journal) EntriesByAccount(accountID string) ([]models.Transaction, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []models.Transaction
	for _, e := range j.entries {
		if e.accountID == accountID {
			out = append(out, e.tx)
		}
	}
	return out, nil
}

// Entries returns a copy of every record in the journal.
func (j *Journal) Entries() ([]models.Transaction, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]models.Transaction, len(j.entries))
	for i, e := range j.entries {
		out[i] = e.tx
	}
	return out, nil
}

var _ interfaces.TransactionJournal = (*Journal)(nil)
