// Package atm is the interactive text shell over the ledger core. It owns
// all console I/O, numeric-string parsing and menu dispatch; the account is
// the sole authority over balances and history.
package atm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/ledger"
	"github.com/sheikh-saqib/atm-banking-simulator/internal/models"
)

const maxLoginAttempts = 3

// Session drives one interactive banking session. Reader and writer are
// injected so tests can script a full session.
type Session struct {
	bank    *ledger.Bank
	sc      *bufio.Scanner
	out     io.Writer
	current *ledger.Account
	eof     bool
}

func NewSession(bank *ledger.Bank, in io.Reader, out io.Writer) *Session {
	return &Session{
		bank: bank,
		sc:   bufio.NewScanner(in),
		out:  out,
	}
}

// Run executes login followed by the menu loop, returning when the user quits,
// exhausts the login attempts, or input ends.
func (s *Session) Run() {
	fmt.Fprintln(s.out, "==== Welcome to the ATM ====")
	if !s.login() {
		// Input running out mid-login is not a lockout.
		if !s.eof {
			fmt.Fprintln(s.out, "Too many failed attempts. Exiting.")
		}
		return
	}

	for !s.eof {
		s.showMenu()
		switch s.readLine() {
		case "1":
			s.printHistory()
		case "2":
			s.withdraw()
		case "3":
			s.deposit()
		case "4":
			s.transfer()
		case "5":
			fmt.Fprintln(s.out, "Thank you. Logging out.")
			s.current = nil
			return
		default:
			if s.eof {
				return
			}
			fmt.Fprintln(s.out, "Invalid choice. Try again.")
		}
	}
}

func (s *Session) login() bool {
	for attempts := 0; attempts < maxLoginAttempts; attempts++ {
		fmt.Fprint(s.out, "Enter User ID: ")
		id := s.readLine()
		fmt.Fprint(s.out, "Enter PIN: ")
		pin := s.readLine()
		if s.eof {
			return false
		}

		acc, err := s.bank.Find(id)
		if err == nil && acc.CheckPIN(pin) {
			s.current = acc
			fmt.Fprintf(s.out, "Login successful. Welcome, User %s!\n", id)
			return true
		}
		fmt.Fprintf(s.out, "Invalid credentials. Attempts left: %d\n", maxLoginAttempts-attempts-1)
	}
	return false
}

func (s *Session) showMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- ATM Menu ---")
	fmt.Fprintln(s.out, "1. Transaction History")
	fmt.Fprintln(s.out, "2. Withdraw")
	fmt.Fprintln(s.out, "3. Deposit")
	fmt.Fprintln(s.out, "4. Transfer")
	fmt.Fprintln(s.out, "5. Quit")
	fmt.Fprint(s.out, "Choose an option: ")
}

func (s *Session) printHistory() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Transaction History ---")

	history := s.current.History()
	if len(history) == 0 {
		fmt.Fprintln(s.out, "No transactions found.")
		return
	}

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Date & Time", "Type", "Amount", "Details"})
	for _, tx := range history {
		table.Append([]string{
			tx.RecordedAt.Format("2006-01-02 15:04"),
			kindLabel(tx.Kind),
			tx.Amount.StringFixed(2),
			tx.Detail,
		})
	}
	table.Render()
	fmt.Fprintf(s.out, "Current balance: %s\n", s.current.Balance().StringFixed(2))
}

func (s *Session) withdraw() {
	amt, ok := s.readAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}
	if _, err := s.current.Withdraw(amt); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			fmt.Fprintln(s.out, "Insufficient balance.")
		} else {
			fmt.Fprintln(s.out, "Invalid amount.")
		}
		return
	}
	fmt.Fprintf(s.out, "Withdrawn %s. New balance: %s\n", amt.StringFixed(2), s.current.Balance().StringFixed(2))
}

func (s *Session) deposit() {
	amt, ok := s.readAmount("Enter amount to deposit: ")
	if !ok {
		return
	}
	if _, err := s.current.Deposit(amt); err != nil {
		fmt.Fprintln(s.out, "Invalid amount.")
		return
	}
	fmt.Fprintf(s.out, "Deposited %s. New balance: %s\n", amt.StringFixed(2), s.current.Balance().StringFixed(2))
}

func (s *Session) transfer() {
	fmt.Fprint(s.out, "Enter recipient User ID: ")
	toID := s.readLine()
	target, err := s.bank.Find(toID)
	if err != nil {
		fmt.Fprintln(s.out, "Recipient account not found.")
		return
	}

	amt, ok := s.readAmount("Enter amount to transfer: ")
	if !ok {
		return
	}

	switch err := s.current.TransferTo(target, amt); {
	case err == nil:
		fmt.Fprintf(s.out, "Transferred %s to %s. New balance: %s\n",
			amt.StringFixed(2), toID, s.current.Balance().StringFixed(2))
	case errors.Is(err, ledger.ErrSelfTransfer):
		fmt.Fprintln(s.out, "Cannot transfer to your own account.")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		fmt.Fprintln(s.out, "Transfer failed (insufficient funds).")
	default:
		fmt.Fprintln(s.out, "Invalid amount.")
	}
}

// readAmount prompts and parses one strictly positive decimal amount. The
// shell owns string parsing; non-positive amounts never reach the core.
func (s *Session) readAmount(prompt string) (decimal.Decimal, bool) {
	fmt.Fprint(s.out, prompt)
	raw := s.readLine()
	amt, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid amount.")
		return decimal.Decimal{}, false
	}
	if amt.Sign() <= 0 {
		fmt.Fprintln(s.out, "Amount must be positive.")
		return decimal.Decimal{}, false
	}
	return amt, true
}

func (s *Session) readLine() string {
	if s.eof {
		return ""
	}
	if !s.sc.Scan() {
		s.eof = true
		return ""
	}
	return strings.TrimSpace(s.sc.Text())
}

func kindLabel(k models.Kind) string {
	switch k {
	case models.KindAccountOpened:
		return "Account Opened"
	case models.KindDeposit:
		return "Deposit"
	case models.KindWithdraw:
		return "Withdraw"
	case models.KindTransferOut:
		return "Transfer Out"
	case models.KindTransferIn:
		return "Transfer In"
	default:
		return string(k)
	}
}
