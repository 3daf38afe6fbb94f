package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	ledgershared "github.com/stationbooks/stationbooks/internal/ledger/shared"
	"github.com/stationbooks/stationbooks/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// Handler exposes the reporting surface over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "account_id is required")
		return
	}
	asOf, ok := h.optionalDate(w, r, "as_of")
	if !ok {
		return
	}
	balance, err := h.service.AccountBalance(r.Context(), accountID, asOf)
	if err != nil {
		h.respondErr(w, "account balance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, balance)
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.optionalDate(w, r, "as_of")
	if !ok {
		return
	}
	tb, err := h.service.TrialBalance(r.Context(), asOf)
	if err != nil {
		h.respondErr(w, "trial balance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, tb)
}

func (h *Handler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.requiredRange(w, r)
	if !ok {
		return
	}
	pl, err := h.service.ProfitLoss(r.Context(), from, to)
	if err != nil {
		h.respondErr(w, "profit and loss", err)
		return
	}
	httpx.JSON(w, http.StatusOK, pl)
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.optionalDate(w, r, "as_of")
	if !ok {
		return
	}
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if asOf != nil {
		date = *asOf
	}
	bs, err := h.service.BalanceSheet(r.Context(), date)
	if err != nil {
		h.respondErr(w, "balance sheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, bs)
}

func (h *Handler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.ParseInt(r.URL.Query().Get("account_id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "account_id is required")
		return
	}
	from, to, ok := h.requiredRange(w, r)
	if !ok {
		return
	}
	gl, err := h.service.GeneralLedger(r.Context(), accountID, from, to)
	if err != nil {
		h.respondErr(w, "general ledger", err)
		return
	}
	httpx.JSON(w, http.StatusOK, gl)
}

func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.requiredRange(w, r)
	if !ok {
		return
	}
	cf, err := h.service.CashFlow(r.Context(), from, to)
	if err != nil {
		h.respondErr(w, "cash flow", err)
		return
	}
	httpx.JSON(w, http.StatusOK, cf)
}

func (h *Handler) optionalDate(w http.ResponseWriter, r *http.Request, param string) (*time.Time, bool) {
	v := r.URL.Query().Get(param)
	if v == "" {
		return nil, true
	}
	date, err := time.Parse(dateLayout, v)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", param+" must be YYYY-MM-DD")
		return nil, false
	}
	return &date, true
}

func (h *Handler) requiredRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "from must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "to must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "to must not precede from")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *Handler) respondErr(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action, slog.Any("error", err))
	ledgershared.RespondError(w, err)
}
