package repositories

import (
	"context"

	"ayitichat/internal/domain/models"
)

// ChatRepository persists chat rows.
type ChatRepository interface {
	CreateChat(ctx context.Context, chat *models.Chat) error
	GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error)
	// GetChatByID skips the owner filter; only the public share path uses it.
	GetChatByID(ctx context.Context, chatID string) (*models.Chat, error)
	// ListChats returns the user's non-archived chats, most recently
	// updated first.
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	UpdateChat(ctx context.Context, chat *models.Chat) error
	DeleteChat(ctx context.Context, chatID, userID string) error
	// TouchChat bumps updated_at after a relay exchange lands.
	TouchChat(ctx context.Context, chatID string) error
}

// MessageRepository persists message rows. Messages are append-only.
type MessageRepository interface {
	AppendMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns a chat's messages in created_at ascending order.
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
	CountMessages(ctx context.Context, chatID string) (int, error)
}
