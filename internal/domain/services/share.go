package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// CreateShareRequest makes a chat publicly readable via token.
type CreateShareRequest struct {
	ChatID string `json:"chat_id"`
	// ExpiresInDays of 0 means the link never expires.
	ExpiresInDays int `json:"expires_in_days,omitempty"`
}

// ShareService manages public share links for chats.
type ShareService interface {
	CreateShare(ctx context.Context, userID string, req *CreateShareRequest) (*models.SharedConversation, error)
	// GetSharedView is the public path; no auth, token is the capability.
	GetSharedView(ctx context.Context, token string) (*models.SharedView, error)
	RevokeShares(ctx context.Context, chatID, userID string) error
}

// GuestService enforces the anonymous daily message quota.
type GuestService interface {
	// Consume spends one message from today's quota. Returns the remaining
	// count, or domain.ErrLimitReached when the cap is hit.
	Consume(ctx context.Context, guestID string) (remaining int, err error)
	Usage(ctx context.Context, guestID string) (used, limit int, err error)
}
