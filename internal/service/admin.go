package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"ayitichat/internal/auth"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
)

// adminService implements the AdminService interface
type adminService struct {
	adminRepo   repositories.AdminRepository
	adminClient *auth.AdminClient
	logger      *slog.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(
	adminRepo repositories.AdminRepository,
	adminClient *auth.AdminClient,
	logger *slog.Logger,
) services.AdminService {
	return &adminService{
		adminRepo:   adminRepo,
		adminClient: adminClient,
		logger:      logger,
	}
}

// RequireAdmin gates every dashboard operation
func (s *adminService) RequireAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("user %s: %w", userID, domain.ErrForbidden)
	}
	return nil
}

// ListPlatformUsers surfaces the Supabase user list on the dashboard
func (s *adminService) ListPlatformUsers(ctx context.Context, userID string) ([]models.PlatformUser, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.adminClient.ListUsers()
}

// ListAdmins returns everyone with dashboard access
func (s *adminService) ListAdmins(ctx context.Context, userID string) ([]models.AdminUser, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.adminRepo.ListAdmins(ctx)
}

// GrantAdmin promotes a platform user, found by email, to dashboard admin
func (s *adminService) GrantAdmin(ctx context.Context, userID string, req *services.GrantAdminRequest) (*models.AdminUser, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	users, err := s.adminClient.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("look up platform user: %w", err)
	}

	var target *models.PlatformUser
	for i := range users {
		if users[i].Email == req.Email {
			target = &users[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("no platform user with email %s: %w", req.Email, domain.ErrNotFound)
	}

	admin := &models.AdminUser{
		UserID:    target.ID,
		Email:     target.Email,
		CreatedAt: time.Now(),
		CreatedBy: &userID,
	}
	if err := s.adminRepo.GrantAdmin(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("admin granted", "target", target.ID, "by", userID)
	return admin, nil
}

// RevokeAdmin removes dashboard access. Admins cannot revoke themselves,
// so the dashboard always keeps at least one admin.
func (s *adminService) RevokeAdmin(ctx context.Context, callerID, targetUserID string) error {
	if err := s.RequireAdmin(ctx, callerID); err != nil {
		return err
	}
	if callerID == targetUserID {
		return fmt.Errorf("%w: cannot revoke your own admin access", domain.ErrValidation)
	}

	if err := s.adminRepo.RevokeAdmin(ctx, targetUserID); err != nil {
		return err
	}

	s.logger.Info("admin revoked", "target", targetUserID, "by", callerID)
	return nil
}

// ListRoles returns the RBAC role catalog
func (s *adminService) ListRoles(ctx context.Context, userID string) ([]models.Role, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.adminRepo.ListRoles(ctx)
}

// ListPermissions returns a role's permissions
func (s *adminService) ListPermissions(ctx context.Context, userID, roleID string) ([]models.Permission, error) {
	if err := s.RequireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.adminRepo.ListPermissions(ctx, roleID)
}

// ListUserRoles returns a user's role assignments
func (s *adminService) ListUserRoles(ctx context.Context, callerID, targetUserID string) ([]models.UserRole, error) {
	if err := s.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	return s.adminRepo.ListUserRoles(ctx, targetUserID)
}
