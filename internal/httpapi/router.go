package httpapi

import "net/http"

// Router wires every endpoint of the HTTP facade.
func Router(h *Handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/accounts/balance", h.Balance)
	mux.HandleFunc("/accounts/history", h.History)
	mux.HandleFunc("/deposits", h.Deposit)
	mux.HandleFunc("/withdrawals", h.Withdrawal)
	mux.HandleFunc("/transfers", h.Transfer)
	return mux
}
