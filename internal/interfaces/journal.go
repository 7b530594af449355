package interfaces

import (
	"context"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/models"
)

// TransactionJournal is a process-wide audit view of every committed record,
// kept next to the per-account histories. Implementations must be safe for
// concurrent use.
type TransactionJournal interface {
	Record(ctx context.Context, accountID string, tx models.Transaction) error
	EntriesByAccount(accountID string) ([]models.Transaction, error)
	Entries() ([]models.Transaction, error)
}
