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

// PostgresShareRepository implements ShareRepository using PostgreSQL
type PostgresShareRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewShareRepository creates a new PostgresShareRepository
func NewShareRepository(config *RepositoryConfig) repositories.ShareRepository {
	return &PostgresShareRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a share link row
func (r *PostgresShareRepository) Create(ctx context.Context, share *models.SharedConversation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (chat_id, share_token, is_public, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.SharedConversations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		share.ChatID,
		share.ShareToken,
		share.IsPublic,
		share.CreatedAt,
		share.ExpiresAt,
	).Scan(&share.ID, &share.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("share token: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create share: %w", err)
	}

	return nil
}

// GetByToken looks up a share by its public token. Ownership is not
// checked here; expiry is the caller's concern.
func (r *PostgresShareRepository) GetByToken(ctx context.Context, token string) (*models.SharedConversation, error) {
	query := fmt.Sprintf(`
		SELECT id, chat_id, share_token, is_public, created_at, expires_at
		FROM %s
		WHERE share_token = $1
	`, r.tables.SharedConversations)

	var share models.SharedConversation
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, token).Scan(
		&share.ID,
		&share.ChatID,
		&share.ShareToken,
		&share.IsPublic,
		&share.CreatedAt,
		&share.ExpiresAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("share %s: %w", token, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get share: %w", err)
	}

	return &share, nil
}

// DeleteByChat revokes every share link for a chat the user owns. The
// subquery enforces ownership so one user cannot revoke another's links.
func (r *PostgresShareRepository) DeleteByChat(ctx context.Context, chatID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE chat_id = $1
		  AND chat_id IN (SELECT id FROM %s WHERE id = $1 AND user_id = $2)
	`, r.tables.SharedConversations, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chatID, userID)
	if err != nil {
		return fmt.Errorf("delete shares: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("shares for chat %s: %w", chatID, domain.ErrNotFound)
	}

	return nil
}
