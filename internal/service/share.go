package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
)

// shareService implements the ShareService interface
type shareService struct {
	shareRepo   repositories.ShareRepository
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	logger      *slog.Logger
}

// NewShareService creates a new share service
func NewShareService(
	shareRepo repositories.ShareRepository,
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	logger *slog.Logger,
) services.ShareService {
	return &shareService{
		shareRepo:   shareRepo,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// CreateShare mints an unguessable token for a chat the caller owns.
func (s *shareService) CreateShare(ctx context.Context, userID string, req *services.CreateShareRequest) (*models.SharedConversation, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.ChatID, validation.Required),
		validation.Field(&req.ExpiresInDays, validation.Min(0), validation.Max(365)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.chatRepo.GetChat(ctx, req.ChatID, userID); err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if req.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, req.ExpiresInDays)
		expiresAt = &t
	}

	share := &models.SharedConversation{
		ChatID:     req.ChatID,
		ShareToken: uuid.NewString(),
		IsPublic:   true,
		CreatedAt:  time.Now(),
		ExpiresAt:  expiresAt,
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}

	s.logger.Info("share link created", "chat_id", req.ChatID, "user_id", userID)
	return share, nil
}

// GetSharedView serves the public share page: the chat plus its messages.
// The token is the sole capability; expired or non-public links 404.
func (s *shareService) GetSharedView(ctx context.Context, token string) (*models.SharedView, error) {
	share, err := s.shareRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !share.IsPublic {
		return nil, fmt.Errorf("share %s: %w", token, domain.ErrNotFound)
	}
	if share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("share %s expired: %w", token, domain.ErrNotFound)
	}

	chat, err := s.chatRepo.GetChatByID(ctx, share.ChatID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListMessages(ctx, share.ChatID)
	if err != nil {
		return nil, err
	}

	// The owner's id stays private on the public page.
	chat.UserID = ""

	return &models.SharedView{Chat: chat, Messages: messages}, nil
}

// RevokeShares deletes every link for a chat the caller owns.
func (s *shareService) RevokeShares(ctx context.Context, chatID, userID string) error {
	if err := s.shareRepo.DeleteByChat(ctx, chatID, userID); err != nil {
		return err
	}
	s.logger.Info("share links revoked", "chat_id", chatID, "user_id", userID)
	return nil
}
