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

// PostgresFamilyMemberRepository implements FamilyMemberRepository using PostgreSQL
type PostgresFamilyMemberRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFamilyMemberRepository creates a new PostgresFamilyMemberRepository
func NewFamilyMemberRepository(config *RepositoryConfig) repositories.FamilyMemberRepository {
	return &PostgresFamilyMemberRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a family member invitation row
func (r *PostgresFamilyMemberRepository) Create(ctx context.Context, member *models.FamilyMember) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, email, phone, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.FamilyMembers)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		member.UserID,
		member.Email,
		member.Phone,
		member.Role,
		member.Status,
		member.CreatedAt,
	).Scan(&member.ID, &member.CreatedAt)

	if err != nil {
		return fmt.Errorf("create family member: %w", err)
	}

	return nil
}

// List returns the user's family members, oldest first
func (r *PostgresFamilyMemberRepository) List(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, email, phone, role, status, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, r.tables.FamilyMembers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.Email, &m.Phone, &m.Role, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate family members: %w", err)
	}

	if members == nil {
		members = []models.FamilyMember{}
	}

	return members, nil
}

// UpdateStatus moves an invitation between pending/accepted/declined
func (r *PostgresFamilyMemberRepository) UpdateStatus(ctx context.Context, memberID, userID, status string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1
		WHERE id = $2 AND user_id = $3
	`, r.tables.FamilyMembers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, status, memberID, userID)
	if err != nil {
		return fmt.Errorf("update family member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("family member %s: %w", memberID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a family member row
func (r *PostgresFamilyMemberRepository) Delete(ctx context.Context, memberID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.FamilyMembers)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, memberID, userID)
	if err != nil {
		return fmt.Errorf("delete family member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("family member %s: %w", memberID, domain.ErrNotFound)
	}

	return nil
}
