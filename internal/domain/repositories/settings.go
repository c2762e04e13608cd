package repositories

import (
	"context"

	"ayitichat/internal/domain/models"
)

// UserPreferencesRepository persists the one-row-per-user settings record.
type UserPreferencesRepository interface {
	// GetByUserID returns domain.ErrNotFound when the user has never saved
	// settings; callers hand out defaults in that case.
	GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)
	// Upsert inserts or replaces the user's row.
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}

// FamilyMemberRepository persists parental-controls rows.
type FamilyMemberRepository interface {
	Create(ctx context.Context, member *models.FamilyMember) error
	List(ctx context.Context, userID string) ([]models.FamilyMember, error)
	UpdateStatus(ctx context.Context, memberID, userID, status string) error
	Delete(ctx context.Context, memberID, userID string) error
}

// OrderRepository persists purchase records.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, userID string) ([]models.Order, error)
}
