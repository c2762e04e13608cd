package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"ayitichat/internal/domain"
	"ayitichat/internal/httputil"
)

// handleError maps service errors to RFC 7807 responses. HTTPError
// implementations (including upstream completion failures) carry their own
// status; sentinel errors map to fixed codes; everything else is a 500 with
// the detail kept out of the response body.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrLimitReached):
		httputil.RespondError(w, http.StatusTooManyRequests, err.Error())
	default:
		slog.Error("unhandled error", "path", r.URL.Path, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUser pulls the authenticated user id out of the context. The auth
// middleware guarantees it for protected routes; this is the backstop.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}
