package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// RelayMessage is one conversation turn as sent by the client. The full
// window is forwarded upstream verbatim.
type RelayMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RelayRequest is the POST /api/chat body.
type RelayRequest struct {
	Messages []RelayMessage `json:"messages"`
	ChatID   *string        `json:"chat_id,omitempty"`
}

// CreateChatRequest creates a conversation row. Clients call this lazily,
// only once a first message exists.
type CreateChatRequest struct {
	Title string `json:"title"`
}

// UpdateChatRequest patches chat metadata. Nil fields are left unchanged.
type UpdateChatRequest struct {
	Title      *string `json:"title,omitempty"`
	IsPinned   *bool   `json:"is_pinned,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
}

// ChatService relays conversations to the completion endpoint and manages
// chat rows.
type ChatService interface {
	// Relay forwards the conversation upstream and, when a chat id is given,
	// persists the exchange. Returns the assistant's reply text.
	Relay(ctx context.Context, userID string, req *RelayRequest) (string, error)

	CreateChat(ctx context.Context, userID string, req *CreateChatRequest) (*models.Chat, error)
	GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	UpdateChat(ctx context.Context, chatID, userID string, req *UpdateChatRequest) (*models.Chat, error)
	DeleteChat(ctx context.Context, chatID, userID string) error
	ListMessages(ctx context.Context, chatID, userID string) ([]models.Message, error)
}
