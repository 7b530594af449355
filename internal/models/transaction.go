package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind categorises a transaction record.
type Kind string

const (
	KindAccountOpened Kind = "account_opened"
	KindDeposit       Kind = "deposit"
	KindWithdraw      Kind = "withdraw"
	KindTransferOut   Kind = "transfer_out"
	KindTransferIn    Kind = "transfer_in"
)

// Transaction is one immutable ledger event. Once constructed it is never
// mutated or removed; accounts hold them in an append-only sequence.
type Transaction struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Detail     string          `json:"detail"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// NewTransaction builds a record and stamps its ID and timestamp.
// Amount validation belongs to the caller; construction cannot fail.
func NewTransaction(kind Kind, amount decimal.Decimal, detail string) Transaction {
	return Transaction{
		ID:         uuid.New().String(),
		Kind:       kind,
		Amount:     amount,
		Detail:     detail,
		RecordedAt: time.Now(),
	}
}

// Signed returns the amount with the sign the record implies for a balance:
// deposits, transfer-ins and the opening record add, withdrawals and
// transfer-outs subtract.
func (t Transaction) Signed() decimal.Decimal {
	switch t.Kind {
	case KindWithdraw, KindTransferOut:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}
