package handler

import (
	"net/http"

	"ayitichat/internal/domain/services"
	"ayitichat/internal/httputil"
)

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	admin services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Me handles GET /api/admin/me: tells the client whether to show the
// dashboard entry point at all.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	isAdmin := h.admin.RequireAdmin(r.Context(), userID) == nil
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"is_admin": isAdmin})
}

// Users handles GET /api/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	users, err := h.admin.ListPlatformUsers(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Admins handles GET /api/admin/admins
func (h *AdminHandler) Admins(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	admins, err := h.admin.ListAdmins(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"admins": admins})
}

// Grant handles POST /api/admin/admins
func (h *AdminHandler) Grant(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.GrantAdminRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.admin.GrantAdmin(r.Context(), userID, &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, admin)
}

// Revoke handles DELETE /api/admin/admins/{userId}
func (h *AdminHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.admin.RevokeAdmin(r.Context(), userID, r.PathValue("userId")); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Roles handles GET /api/admin/roles
func (h *AdminHandler) Roles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	roles, err := h.admin.ListRoles(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"roles": roles})
}

// RolePermissions handles GET /api/admin/roles/{id}/permissions
func (h *AdminHandler) RolePermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	perms, err := h.admin.ListPermissions(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"permissions": perms})
}

// UserRoles handles GET /api/admin/users/{userId}/roles
func (h *AdminHandler) UserRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	roles, err := h.admin.ListUserRoles(r.Context(), userID, r.PathValue("userId"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"user_roles": roles})
}
