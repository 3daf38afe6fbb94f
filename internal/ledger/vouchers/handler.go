package vouchers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ledgershared "github.com/stationbooks/stationbooks/internal/ledger/shared"
	"github.com/stationbooks/stationbooks/internal/platform/httpx"
	"github.com/stationbooks/stationbooks/internal/shared"
)

const dateLayout = "2006-01-02"

// Handler exposes voucher posting over JSON.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the vouchers HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// PostVoucherRequest is the JSON payload for voucher posting.
type PostVoucherRequest struct {
	Type         string              `json:"type" validate:"required"`
	Date         string              `json:"date" validate:"required"`
	Narration    string              `json:"narration"`
	SourceModule string              `json:"source_module"`
	SourceID     string              `json:"source_id"`
	Entries      []VoucherEntryInput `json:"entries" validate:"required,min=1,dive"`
}

// VoucherEntryInput is one entry leg of the posting payload.
type VoucherEntryInput struct {
	AccountID int64           `json:"account_id" validate:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Narration string          `json:"narration"`
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var req PostVoucherRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}
	input := PostingInput{
		Type:         VoucherType(req.Type),
		Date:         date,
		Narration:    req.Narration,
		SourceModule: req.SourceModule,
	}
	if req.SourceID != "" {
		sourceID, err := uuid.Parse(req.SourceID)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "source_id must be a UUID")
			return
		}
		input.SourceID = sourceID
	}
	for _, entry := range req.Entries {
		input.Lines = append(input.Lines, PostingLineInput{
			AccountID: entry.AccountID,
			Debit:     entry.Debit,
			Credit:    entry.Credit,
			Narration: entry.Narration,
		})
	}
	voucher, err := h.service.Post(r.Context(), input)
	if err != nil {
		h.respondErr(w, "post voucher", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, voucher)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	voucher, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.respondErr(w, "cancel voucher", err)
		return
	}
	httpx.JSON(w, http.StatusOK, voucher)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	voucher, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, "get voucher", err)
		return
	}
	httpx.JSON(w, http.StatusOK, voucher)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{}
	q := r.URL.Query()
	if v := q.Get("type"); v != "" {
		t := VoucherType(v)
		filter.Type = &t
	}
	if v := q.Get("status"); v != "" {
		s := VoucherStatus(v)
		filter.Status = &s
	}
	if v := q.Get("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "from must be YYYY-MM-DD")
			return
		}
		filter.FromDate = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "to must be YYYY-MM-DD")
			return
		}
		filter.ToDate = &to
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	vouchersOut, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondErr(w, "list vouchers", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"vouchers":   vouchersOut,
		"pagination": shared.NewPagination(filter.Page, filter.PerPage, total),
	})
}

func (h *Handler) respondErr(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action, slog.Any("error", err))
	ledgershared.RespondError(w, err)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid voucher id")
		return 0, false
	}
	return id, true
}
