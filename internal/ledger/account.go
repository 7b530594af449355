package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/models"
)

// recorder receives every committed record. The bank installs one at
// registration to fan records out to the journal and event publisher.
// It is always invoked after the account lock(s) have been released: the
// sink may do slow I/O (a broker round-trip), and no balance read or
// mutation should wait on it.
type recorder func(accountID string, tx models.Transaction)

// Account owns a balance and its ordered transaction history. The mutex
// guards both as a single unit, so a record is never visible without its
// balance change and vice versa.
type Account struct {
	mu      sync.Mutex
	userID  string
	pin     string
	balance decimal.Decimal
	history []models.Transaction
	record  recorder
}

// NewAccount opens an account with the given opening balance, writing the
// synthetic opening record as the first history entry. A negative opening
// balance is rejected; zero is fine.
func NewAccount(userID, pin string, opening decimal.Decimal) (*Account, error) {
	if opening.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	a := &Account{
		userID:  userID,
		pin:     pin,
		balance: opening,
	}
	a.history = append(a.history, models.NewTransaction(models.KindAccountOpened, opening, "Initial balance"))
	return a, nil
}

// UserID returns the account's immutable identifier.
func (a *Account) UserID() string { return a.userID }

// CheckPIN reports whether candidate matches the stored PIN exactly.
// This is a plaintext equality check, not constant-time: a known weak point
// if this core is ever reused in a security-sensitive setting.
func (a *Account) CheckPIN(candidate string) bool {
	return a.pin == candidate
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit credits the account and appends a deposit record. The only failure
// is a non-positive amount.
func (a *Account) Deposit(amount decimal.Decimal) (models.Transaction, error) {
	if amount.Sign() <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}

	a.mu.Lock()
	a.balance = a.balance.Add(amount)
	tx := models.NewTransaction(models.KindDeposit, amount, "Self deposit")
	a.history = append(a.history, tx)
	rec := a.record
	a.mu.Unlock()

	if rec != nil {
		rec(a.userID, tx)
	}
	return tx, nil
}

// Withdraw debits the account if the balance covers the amount. On
// ErrInsufficientFunds neither the balance nor the history changes.
func (a *Account) Withdraw(amount decimal.Decimal) (models.Transaction, error) {
	if amount.Sign() <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}

	a.mu.Lock()
	if a.balance.LessThan(amount) {
		a.mu.Unlock()
		return models.Transaction{}, ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	tx := models.NewTransaction(models.KindWithdraw, amount, "Cash withdrawal")
	a.history = append(a.history, tx)
	rec := a.record
	a.mu.Unlock()

	if rec != nil {
		rec(a.userID, tx)
	}
	return tx, nil
}

// TransferTo moves amount from this account to other as one atomic step:
// either both balances move and both records are appended, or nothing
// changes. Self-transfers are rejected outright.
func (a *Account) TransferTo(other *Account, amount decimal.Decimal) error {
	if other == nil {
		return ErrAccountNotFound
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if a == other || a.userID == other.userID {
		return ErrSelfTransfer
	}

	// Lock both accounts in userID order so two opposite-direction transfers
	// can never deadlock each other.
	first, second := a, other
	if other.userID < a.userID {
		first, second = other, a
	}
	first.mu.Lock()
	second.mu.Lock()

	if a.balance.LessThan(amount) {
		second.mu.Unlock()
		first.mu.Unlock()
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)
	other.balance = other.balance.Add(amount)
	out := models.NewTransaction(models.KindTransferOut, amount, "To user "+other.userID)
	in := models.NewTransaction(models.KindTransferIn, amount, "From user "+a.userID)
	a.history = append(a.history, out)
	other.history = append(other.history, in)
	recOut, recIn := a.record, other.record
	second.mu.Unlock()
	first.mu.Unlock()

	if recOut != nil {
		recOut(a.userID, out)
	}
	if recIn != nil {
		recIn(other.userID, in)
	}
	return nil
}

// History returns the full transaction history in chronological order. The
// slice is a copy; an empty result means the account has no records yet.
func (a *Account) History() []models.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// attach installs the bank's record sink and replays the history written
// before registration (at least the opening record) so the journal sees it.
// The replay, like all fan-out, happens after the lock is released.
func (a *Account) attach(r recorder) {
	a.mu.Lock()
	a.record = r
	replay := make([]models.Transaction, len(a.history))
	copy(replay, a.history)
	a.mu.Unlock()

	for _, tx := range replay {
		r(a.userID, tx)
	}
}
