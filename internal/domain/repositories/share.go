package repositories

import (
	"context"

	"ayitichat/internal/domain/models"
)

// ShareRepository persists shared-conversation tokens.
type ShareRepository interface {
	Create(ctx context.Context, share *models.SharedConversation) error
	// GetByToken is the public lookup path; it does not filter by user.
	GetByToken(ctx context.Context, token string) (*models.SharedConversation, error)
	// DeleteByChat revokes all share links for a chat the user owns.
	DeleteByChat(ctx context.Context, chatID, userID string) error
}

// GuestUsageRepository tracks anonymous guests' daily relay usage.
// Counters expire on their own; nothing is ever deleted explicitly.
type GuestUsageRepository interface {
	// Increment bumps today's counter for the guest and returns the new value.
	Increment(ctx context.Context, guestID string) (int, error)
	Count(ctx context.Context, guestID string) (int, error)
}

// ProjectCache is a read-through cache of project records keyed by id.
type ProjectCache interface {
	Get(ctx context.Context, projectID string) (*models.Project, bool)
	Set(ctx context.Context, project *models.Project)
	Invalidate(ctx context.Context, projectID string)
}
