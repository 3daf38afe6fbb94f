package shared

import (
	"errors"
	"net/http"

	"github.com/stationbooks/stationbooks/internal/platform/httpx"
)

// RespondError maps ledger domain errors to RFC7807 responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnbalanced):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrVoucherNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrSourceAlreadyLinked):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrProtectedAccount), errors.Is(err, ErrAccountHasEntries), errors.Is(err, ErrAlreadyCancelled):
		httpx.Problem(w, http.StatusConflict, "Business Rule Violation", err.Error())
	default:
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
