package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
)

// PostgresAdminRepository implements AdminRepository using PostgreSQL
type PostgresAdminRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAdminRepository creates a new PostgresAdminRepository
func NewAdminRepository(config *RepositoryConfig) repositories.AdminRepository {
	return &PostgresAdminRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// IsAdmin reports whether the user has an admin_users row
func (r *PostgresAdminRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1)
	`, r.tables.AdminUsers)

	var exists bool
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}

	return exists, nil
}

// ListAdmins returns all dashboard admins, oldest grant first
func (r *PostgresAdminRepository) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, email, created_at, created_by
		FROM %s
		ORDER BY created_at ASC
	`, r.tables.AdminUsers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []models.AdminUser
	for rows.Next() {
		var a models.AdminUser
		if err := rows.Scan(&a.ID, &a.UserID, &a.Email, &a.CreatedAt, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admins: %w", err)
	}

	if admins == nil {
		admins = []models.AdminUser{}
	}

	return admins, nil
}

// GrantAdmin inserts an admin row; granting twice is a conflict
func (r *PostgresAdminRepository) GrantAdmin(ctx context.Context, admin *models.AdminUser) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, email, created_at, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, r.tables.AdminUsers)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		admin.UserID,
		admin.Email,
		admin.CreatedAt,
		admin.CreatedBy,
	).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("admin %s: %w", admin.UserID, domain.ErrConflict)
		}
		return fmt.Errorf("grant admin: %w", err)
	}

	return nil
}

// RevokeAdmin removes the user's admin row
func (r *PostgresAdminRepository) RevokeAdmin(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1
	`, r.tables.AdminUsers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("revoke admin: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %s: %w", userID, domain.ErrNotFound)
	}

	return nil
}

// ListRoles returns the role catalog
func (r *PostgresAdminRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at
		FROM %s
		ORDER BY name ASC
	`, r.tables.Roles)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}

	if roles == nil {
		roles = []models.Role{}
	}

	return roles, nil
}

// ListPermissions returns the permissions attached to a role
func (r *PostgresAdminRepository) ListPermissions(ctx context.Context, roleID string) ([]models.Permission, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.resource, p.action
		FROM %s p
		JOIN %s rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.resource ASC, p.action ASC
	`, r.tables.Permissions, r.tables.RolePermissions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	var perms []models.Permission
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Resource, &p.Action); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permissions: %w", err)
	}

	if perms == nil {
		perms = []models.Permission{}
	}

	return perms, nil
}

// ListUserRoles returns the user's role assignments with the role embedded
func (r *PostgresAdminRepository) ListUserRoles(ctx context.Context, userID string) ([]models.UserRole, error) {
	query := fmt.Sprintf(`
		SELECT ur.id, ur.user_id, ur.role_id, ur.assigned_at, ur.assigned_by,
		       ro.id, ro.name, ro.description, ro.created_at
		FROM %s ur
		JOIN %s ro ON ro.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ur.assigned_at ASC
	`, r.tables.UserRoles, r.tables.Roles)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer rows.Close()

	var assignments []models.UserRole
	for rows.Next() {
		var ur models.UserRole
		var role models.Role
		err := rows.Scan(
			&ur.ID, &ur.UserID, &ur.RoleID, &ur.AssignedAt, &ur.AssignedBy,
			&role.ID, &role.Name, &role.Description, &role.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user role: %w", err)
		}
		ur.Role = &role
		assignments = append(assignments, ur)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user roles: %w", err)
	}

	if assignments == nil {
		assignments = []models.UserRole{}
	}

	return assignments, nil
}
