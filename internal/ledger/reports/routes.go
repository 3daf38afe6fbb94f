package reports

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balance", h.AccountBalance)
	r.Get("/trial-balance", h.TrialBalance)
	r.Get("/profit-loss", h.ProfitLoss)
	r.Get("/balance-sheet", h.BalanceSheet)
	r.Get("/general-ledger", h.GeneralLedger)
	r.Get("/cash-flow", h.CashFlow)
}
