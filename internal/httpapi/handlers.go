package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/atm-banking-simulator/internal/ledger"
)

// Handlers exposes the ledger core over HTTP. Display formatting and status
// mapping live here; the account stays the sole authority over balances.
type Handlers struct {
	bank *ledger.Bank
}

func NewHandlers(bank *ledger.Bank) *Handlers { return &Handlers{bank: bank} }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// httpStatusForErr maps the ledger's sentinel errors onto HTTP status codes.
func httpStatusForErr(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrSelfTransfer):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeLedgerErr(w http.ResponseWriter, err error) {
	code := httpStatusForErr(err)
	msg := err.Error()
	if code >= 500 {
		msg = "internal error"
	}
	writeErr(w, code, msg)
}

type balanceResponse struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// findByQuery resolves the user_id query parameter of the read endpoints.
func (h *Handlers) findByQuery(w http.ResponseWriter, r *http.Request) (*ledger.Account, bool) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "user_id is a mandatory field")
		return nil, false
	}

	acc, err := h.bank.Find(userID)
	if err != nil {
		writeLedgerErr(w, err)
		return nil, false
	}
	return acc, true
}

func (h *Handlers) Balance(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.findByQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{UserID: acc.UserID(), Balance: acc.Balance()})
}

func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.findByQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, acc.History())
}

func (h *Handlers) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(acc *ledger.Account, amount decimal.Decimal) error {
		_, err := acc.Deposit(amount)
		return err
	})
}

func (h *Handlers) Withdrawal(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(acc *ledger.Account, amount decimal.Decimal) error {
		_, err := acc.Withdraw(amount)
		return err
	})
}

// mutate is the shared shape of the deposit and withdrawal endpoints:
// decode, authenticate, mutate, report the new balance.
func (h *Handlers) mutate(w http.ResponseWriter, r *http.Request, op func(*ledger.Account, decimal.Decimal) error) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		UserID string          `json:"user_id"`
		Pin    string          `json:"pin"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.bank.Find(req.UserID)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	if !acc.CheckPIN(req.Pin) {
		writeErr(w, http.StatusUnauthorized, "authentication failed")
		return
	}

	if err := op(acc, req.Amount); err != nil {
		writeLedgerErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, balanceResponse{UserID: acc.UserID(), Balance: acc.Balance()})
}

func (h *Handlers) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		FromAccount string          `json:"from_account"`
		Pin         string          `json:"pin"`
		ToAccount   string          `json:"to_account"`
		Amount      decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	from, err := h.bank.Find(req.FromAccount)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	if !from.CheckPIN(req.Pin) {
		writeErr(w, http.StatusUnauthorized, "authentication failed")
		return
	}
	to, err := h.bank.Find(req.ToAccount)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}

	if err := from.TransferTo(to, req.Amount); err != nil {
		writeLedgerErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "transfer recorded"})
}
