package handler

import (
	"net/http"

	"ayitichat/internal/domain/services"
	"ayitichat/internal/httputil"
)

// SettingsHandler serves preferences, family members and orders.
type SettingsHandler struct {
	settings services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetPreferences handles GET /api/preferences
func (h *SettingsHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := h.settings.GetPreferences(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences handles PATCH /api/preferences
func (h *SettingsHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.UpdatePreferencesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.settings.UpdatePreferences(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

// ListFamily handles GET /api/family
func (h *SettingsHandler) ListFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	members, err := h.settings.ListFamilyMembers(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

// AddFamily handles POST /api/family
func (h *SettingsHandler) AddFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CreateFamilyMemberRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.settings.AddFamilyMember(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, member)
}

// UpdateFamilyStatus handles PATCH /api/family/{id}
func (h *SettingsHandler) UpdateFamilyStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.settings.UpdateFamilyMemberStatus(r.Context(), r.PathValue("id"), userID, req.Status); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFamily handles DELETE /api/family/{id}
func (h *SettingsHandler) RemoveFamily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.settings.RemoveFamilyMember(r.Context(), r.PathValue("id"), userID); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders handles GET /api/orders
func (h *SettingsHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.settings.ListOrders(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
