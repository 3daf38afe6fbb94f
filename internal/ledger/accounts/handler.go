package accounts

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stationbooks/stationbooks/internal/ledger/shared"
	"github.com/stationbooks/stationbooks/internal/platform/httpx"
)

// Handler exposes the account registry over JSON.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the accounts HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// CreateAccountRequest is the JSON payload for account creation.
type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required"`
	IsSystem bool   `json:"is_system"`
}

// UpdateAccountRequest is the JSON payload for account updates. An
// is_system key in the body is ignored; the flag is set at creation only.
type UpdateAccountRequest struct {
	Name   *string `json:"name"`
	Type   *string `json:"type"`
	Status *string `json:"status"`
}

func (h *Handler) respondErr(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action, slog.Any("error", err))
	shared.RespondError(w, err)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	account, err := h.service.Create(r.Context(), CreateInput{
		Name:     req.Name,
		Type:     AccountType(req.Type),
		IsSystem: req.IsSystem,
	})
	if err != nil {
		h.respondErr(w, "create account", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, account)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var filter Filter
	if v := r.URL.Query().Get("type"); v != "" {
		t := AccountType(v)
		filter.Type = &t
	}
	if v := r.URL.Query().Get("status"); v != "" {
		s := AccountStatus(v)
		filter.Status = &s
	}
	if v := r.URL.Query().Get("is_system"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "is_system must be a boolean")
			return
		}
		filter.IsSystem = &b
	}
	accounts, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondErr(w, "list accounts", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	account, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, "get account", err)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON payload")
		return
	}
	var patch Patch
	if req.Name != nil {
		patch.Name = req.Name
	}
	if req.Type != nil {
		t := AccountType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		s := AccountStatus(*req.Status)
		patch.Status = &s
	}
	account, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		h.respondErr(w, "update account", err)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	count, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondErr(w, "delete account", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

func (h *Handler) CheckProtection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	protection, err := h.service.CheckProtection(r.Context(), id)
	if err != nil {
		h.respondErr(w, "check account protection", err)
		return
	}
	httpx.JSON(w, http.StatusOK, protection)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid account id")
		return 0, false
	}
	return id, true
}
