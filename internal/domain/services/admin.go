package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// GrantAdminRequest promotes a platform user to dashboard admin.
type GrantAdminRequest struct {
	Email string `json:"email"`
}

// AdminService gates and serves the admin dashboard.
type AdminService interface {
	// RequireAdmin returns domain.ErrForbidden for non-admin callers.
	RequireAdmin(ctx context.Context, userID string) error

	ListPlatformUsers(ctx context.Context, userID string) ([]models.PlatformUser, error)
	ListAdmins(ctx context.Context, userID string) ([]models.AdminUser, error)
	GrantAdmin(ctx context.Context, userID string, req *GrantAdminRequest) (*models.AdminUser, error)
	RevokeAdmin(ctx context.Context, callerID, targetUserID string) error

	ListRoles(ctx context.Context, userID string) ([]models.Role, error)
	ListPermissions(ctx context.Context, userID, roleID string) ([]models.Permission, error)
	ListUserRoles(ctx context.Context, callerID, targetUserID string) ([]models.UserRole, error)
}
