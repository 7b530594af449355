package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecorded is emitted after a ledger mutation has been committed
// to an account's history.
type TransactionRecorded struct {
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Detail        string          `json:"detail"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
