package httpx

import (
	"errors"
	"net/http"

	"github.com/lumiere-institute/lumiere/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Authorization denials carry only the status text: the response must not
// disclose whether the target exists or which permission was missing.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrUnauthenticated), errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "")
	case errors.Is(err, shared.ErrRoleNotFound), errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicateRole), errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrProtectedRole):
		Problem(w, http.StatusConflict, "Protected Role", err.Error())
	case errors.Is(err, shared.ErrInvalidPermission):
		Problem(w, http.StatusUnprocessableEntity, "Invalid Permission", err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		Problem(w, http.StatusUnprocessableEntity, "Invalid Input", err.Error())
	case errors.Is(err, shared.ErrBackendUnavailable):
		Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
