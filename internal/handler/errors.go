package handler

import (
	"errors"
	"net/http"

	"pagesmith/internal/domain"
	"pagesmith/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Gateway and
// configuration failures deliberately collapse into a generic 500: neither
// upstream detail nor prompt content is ever echoed to the caller.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrInsufficientCredits):
		httputil.RespondError(w, http.StatusForbidden, "add more credits")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUserID pulls the authenticated user from the context, writing a 401
// when the middleware did not run (or the token had no subject).
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}
