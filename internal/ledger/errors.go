package ledger

import "errors"

// Every ledger error is recoverable and local: callers map them to user-facing
// messages, nothing here terminates the process.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("account already registered")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
)
