package ledger_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/ledger"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustAccount(t *testing.T, id, pin, opening string) *ledger.Account {
	t.Helper()
	a, err := ledger.NewAccount(id, pin, dec(opening))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// historySum replays an account's history to the balance it implies.
func historySum(history []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range history {
		sum = sum.Add(tx.Signed())
	}
	return sum
}

func TestOpeningRecord(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "5000.00")

	if !a.Balance().Equal(dec("5000.00")) {
		t.Fatalf("opening balance expected 5000.00, got %s", a.Balance())
	}
	history := a.History()
	if len(history) != 1 {
		t.Fatalf("expected exactly the opening record, got %d records", len(history))
	}
	if history[0].Kind != models.KindAccountOpened {
		t.Fatalf("expected account_opened record, got %s", history[0].Kind)
	}
	if !history[0].Amount.Equal(dec("5000.00")) {
		t.Fatalf("opening record amount expected 5000.00, got %s", history[0].Amount)
	}
}

func TestNegativeOpeningRejected(t *testing.T) {
	if _, err := ledger.NewAccount("1001", "1234", dec("-1")); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "5000.00")

	if _, err := a.Deposit(dec("250.50")); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Withdraw(dec("250.50")); err != nil {
		t.Fatal(err)
	}

	if !a.Balance().Equal(dec("5000.00")) {
		t.Fatalf("round trip should restore balance, got %s", a.Balance())
	}
	if got := len(a.History()); got != 3 {
		t.Fatalf("expected opening + 2 records, got %d", got)
	}
}

func TestWithdrawInsufficientFundsLeavesStateUntouched(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "100.00")

	_, err := a.Withdraw(dec("100.01"))
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !a.Balance().Equal(dec("100.00")) {
		t.Fatalf("failed withdraw must not touch balance, got %s", a.Balance())
	}
	if got := len(a.History()); got != 1 {
		t.Fatalf("failed withdraw must not append history, got %d records", got)
	}
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "100.00")
	b := mustAccount(t, "1002", "4321", "100.00")

	for _, amt := range []decimal.Decimal{decimal.Zero, dec("-5")} {
		if _, err := a.Deposit(amt); !errors.Is(err, ledger.ErrInvalidAmount) {
			t.Fatalf("deposit %s: expected ErrInvalidAmount, got %v", amt, err)
		}
		if _, err := a.Withdraw(amt); !errors.Is(err, ledger.ErrInvalidAmount) {
			t.Fatalf("withdraw %s: expected ErrInvalidAmount, got %v", amt, err)
		}
		if err := a.TransferTo(b, amt); !errors.Is(err, ledger.ErrInvalidAmount) {
			t.Fatalf("transfer %s: expected ErrInvalidAmount, got %v", amt, err)
		}
	}
	if got := len(a.History()); got != 1 {
		t.Fatalf("rejected amounts must not append history, got %d records", got)
	}
}

func TestCheckPINExactMatchOnly(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "0")

	if !a.CheckPIN("1234") {
		t.Fatal("exact PIN must match")
	}
	for _, candidate := range []string{"123", "12345", "", "1233", " 1234"} {
		if a.CheckPIN(candidate) {
			t.Fatalf("PIN %q must not match", candidate)
		}
	}
}

func TestBalanceEqualsHistorySum(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "5000.00")
	b := mustAccount(t, "1002", "4321", "3500.00")

	a.Deposit(dec("200"))
	a.Withdraw(dec("75.25"))
	a.TransferTo(b, dec("1000"))
	a.Withdraw(dec("9999999")) // fails, must not disturb the invariant
	b.Deposit(dec("0.01"))
	b.TransferTo(a, dec("500"))

	for _, acc := range []*ledger.Account{a, b} {
		if sum := historySum(acc.History()); !acc.Balance().Equal(sum) {
			t.Fatalf("account %s: balance %s != history sum %s", acc.UserID(), acc.Balance(), sum)
		}
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "100.00")

	history := a.History()
	history[0].Detail = "tampered"
	if a.History()[0].Detail == "tampered" {
		t.Fatal("History must return a copy, not internal state")
	}
}

func TestTransferMovesBothSidesAndRecordsCounterparties(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "5000.00")
	b := mustAccount(t, "1002", "4321", "3500.00")

	if err := a.TransferTo(b, dec("1000.00")); err != nil {
		t.Fatal(err)
	}

	if !a.Balance().Equal(dec("4000.00")) {
		t.Fatalf("source balance expected 4000.00, got %s", a.Balance())
	}
	if !b.Balance().Equal(dec("4500.00")) {
		t.Fatalf("target balance expected 4500.00, got %s", b.Balance())
	}

	aLast := a.History()[len(a.History())-1]
	bLast := b.History()[len(b.History())-1]
	if aLast.Kind != models.KindTransferOut || aLast.Detail != "To user 1002" {
		t.Fatalf("source record wrong: %s %q", aLast.Kind, aLast.Detail)
	}
	if bLast.Kind != models.KindTransferIn || bLast.Detail != "From user 1001" {
		t.Fatalf("target record wrong: %s %q", bLast.Kind, bLast.Detail)
	}
}

func TestTransferInsufficientFundsIsAtomic(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "100.00")
	b := mustAccount(t, "1002", "4321", "3500.00")

	err := a.TransferTo(b, dec("100.01"))
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !a.Balance().Equal(dec("100.00")) || !b.Balance().Equal(dec("3500.00")) {
		t.Fatalf("failed transfer must not touch either balance: %s / %s", a.Balance(), b.Balance())
	}
	if len(a.History()) != 1 || len(b.History()) != 1 {
		t.Fatalf("failed transfer must not touch either history: %d / %d", len(a.History()), len(b.History()))
	}
}

func TestSelfTransferRejected(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "100.00")

	if err := a.TransferTo(a, dec("10")); !errors.Is(err, ledger.ErrSelfTransfer) {
		t.Fatalf("expected ErrSelfTransfer, got %v", err)
	}
	if !a.Balance().Equal(dec("100.00")) || len(a.History()) != 1 {
		t.Fatal("rejected self-transfer must not mutate the account")
	}
}

// The concrete end-to-end scenario: open 5000.00, deposit 200.00, fail a
// 6000.00 withdrawal, then transfer 1000.00 to an account opened with 3500.00.
func TestReferenceScenario(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "5000.00")
	b := mustAccount(t, "1002", "4321", "3500.00")
	total := a.Balance().Add(b.Balance())

	if _, err := a.Deposit(dec("200.00")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(dec("5200.00")) {
		t.Fatalf("after deposit expected 5200.00, got %s", a.Balance())
	}
	if got := len(a.History()); got != 2 {
		t.Fatalf("after deposit expected 2 records, got %d", got)
	}

	if _, err := a.Withdraw(dec("6000.00")); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !a.Balance().Equal(dec("5200.00")) {
		t.Fatalf("failed withdraw changed the balance: %s", a.Balance())
	}

	if err := a.TransferTo(b, dec("1000.00")); err != nil {
		t.Fatal(err)
	}
	if !a.Balance().Equal(dec("4200.00")) {
		t.Fatalf("source expected 4200.00, got %s", a.Balance())
	}
	if !b.Balance().Equal(dec("4500.00")) {
		t.Fatalf("target expected 4500.00, got %s", b.Balance())
	}
	if len(a.History()) != 3 || len(b.History()) != 2 {
		t.Fatalf("history lengths expected 3/2, got %d/%d", len(a.History()), len(b.History()))
	}

	// Only the 200.00 deposit brought money in; the transfer moved it around.
	if got := a.Balance().Add(b.Balance()); !got.Equal(total.Add(dec("200.00"))) {
		t.Fatalf("transfer must conserve total balance, got %s", got)
	}
}

// Opposite-direction transfers run concurrently; the userID lock ordering
// must keep them deadlock-free and the total conserved.
func TestConcurrentOppositeTransfers(t *testing.T) {
	a := mustAccount(t, "1001", "1234", "10000")
	b := mustAccount(t, "1002", "4321", "10000")
	total := a.Balance().Add(b.Balance())

	const rounds = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			a.TransferTo(b, dec("1"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			b.TransferTo(a, dec("1"))
		}
	}()
	wg.Wait()

	if got := a.Balance().Add(b.Balance()); !got.Equal(total) {
		t.Fatalf("total balance drifted under concurrency: %s != %s", got, total)
	}
	for _, acc := range []*ledger.Account{a, b} {
		if sum := historySum(acc.History()); !acc.Balance().Equal(sum) {
			t.Fatalf("account %s: balance %s != history sum %s", acc.UserID(), acc.Balance(), sum)
		}
	}
}
