package repositories

import (
	"context"

	"ayitichat/internal/domain/models"
)

// AdminRepository persists dashboard access rows and RBAC reads.
type AdminRepository interface {
	// IsAdmin reports whether the user has an admin_users row.
	IsAdmin(ctx context.Context, userID string) (bool, error)
	ListAdmins(ctx context.Context) ([]models.AdminUser, error)
	GrantAdmin(ctx context.Context, admin *models.AdminUser) error
	RevokeAdmin(ctx context.Context, userID string) error

	ListRoles(ctx context.Context) ([]models.Role, error)
	ListPermissions(ctx context.Context, roleID string) ([]models.Permission, error)
	ListUserRoles(ctx context.Context, userID string) ([]models.UserRole, error)
}
