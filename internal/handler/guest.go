package handler

import (
	"net/http"

	"ayitichat/internal/domain/services"
	"ayitichat/internal/httputil"
)

// GuestHandler enforces the anonymous daily message quota. Guests identify
// themselves with a client-generated id header; the limit rides on that id
// plus the calendar day.
type GuestHandler struct {
	guests services.GuestService
}

// NewGuestHandler creates a new GuestHandler
func NewGuestHandler(guests services.GuestService) *GuestHandler {
	return &GuestHandler{guests: guests}
}

// Consume handles POST /api/guest/messages
func (h *GuestHandler) Consume(w http.ResponseWriter, r *http.Request) {
	guestID := r.Header.Get("X-Guest-ID")

	remaining, err := h.guests.Consume(r.Context(), guestID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"remaining": remaining})
}

// Usage handles GET /api/guest/usage
func (h *GuestHandler) Usage(w http.ResponseWriter, r *http.Request) {
	guestID := r.Header.Get("X-Guest-ID")

	used, limit, err := h.guests.Usage(r.Context(), guestID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{
		"used":      used,
		"limit":     limit,
		"remaining": limit - used,
	})
}
