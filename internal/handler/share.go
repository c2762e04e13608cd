package handler

import (
	"net/http"

	"ayitichat/internal/domain/services"
	"ayitichat/internal/httputil"
)

// ShareHandler serves share link creation, the public share page, and
// revocation.
type ShareHandler struct {
	shares services.ShareService
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shares services.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

// Create handles POST /api/chats/{id}/share
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CreateShareRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.ChatID = r.PathValue("id")

	share, err := h.shares.CreateShare(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, share)
}

// Get handles GET /api/shares/{token} (public, no auth)
func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.shares.GetSharedView(r.Context(), r.PathValue("token"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// Revoke handles DELETE /api/chats/{id}/share
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.shares.RevokeShares(r.Context(), r.PathValue("id"), userID); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
