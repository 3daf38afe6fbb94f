package audit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stationbooks/stationbooks/internal/platform/httpx"
)

// Handler exposes the integrity audit over JSON.
type Handler struct {
	logger  *slog.Logger
	auditor *Auditor
}

// NewHandler constructs the audit HTTP handler.
func NewHandler(logger *slog.Logger, auditor *Auditor) *Handler {
	return &Handler{logger: logger, auditor: auditor}
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := h.auditor.Validate(r.Context())
	if err != nil {
		h.logger.Error("ledger integrity audit", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/integrity", h.Validate)
}
