package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"ayitichat/internal/config"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
	"ayitichat/internal/llm"
)

// chatService implements the ChatService interface
type chatService struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	txManager   repositories.TransactionManager
	completions llm.CompletionClient
	chatModel   string
	logger      *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	txManager repositories.TransactionManager,
	completions llm.CompletionClient,
	chatModel string,
	logger *slog.Logger,
) services.ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		txManager:   txManager,
		completions: completions,
		chatModel:   chatModel,
		logger:      logger,
	}
}

// Relay forwards the full conversation window upstream and persists the
// exchange when a chat id is present. The upstream call happens before any
// write, so an upstream failure leaves the database untouched.
func (s *chatService) Relay(ctx context.Context, userID string, req *services.RelayRequest) (string, error) {
	if err := s.validateRelayRequest(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Ownership check up front: a bad chat_id should fail before the
	// (expensive) upstream call.
	if req.ChatID != nil {
		if _, err := s.chatRepo.GetChat(ctx, *req.ChatID, userID); err != nil {
			return "", err
		}
	}

	upstream := make([]llm.ChatMessage, len(req.Messages))
	for i, m := range req.Messages {
		upstream[i] = llm.ChatMessage{Role: m.Role, Content: m.Content}
	}

	reply, err := s.completions.Complete(ctx, llm.CompletionRequest{
		Model:    s.chatModel,
		Messages: upstream,
	})
	if err != nil {
		return "", err
	}

	reply = llm.ScrubArtifacts(reply)

	if req.ChatID != nil {
		chatID := *req.ChatID
		lastUser := req.Messages[len(req.Messages)-1]

		err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			userMsg := &models.Message{
				ChatID:    chatID,
				Role:      models.RoleUser,
				Content:   lastUser.Content,
				CreatedAt: time.Now(),
			}
			if err := s.messageRepo.AppendMessage(txCtx, userMsg); err != nil {
				return err
			}

			assistantMsg := &models.Message{
				ChatID:    chatID,
				Role:      models.RoleAssistant,
				Content:   reply,
				CreatedAt: time.Now(),
			}
			if err := s.messageRepo.AppendMessage(txCtx, assistantMsg); err != nil {
				return err
			}

			return s.chatRepo.TouchChat(txCtx, chatID)
		})
		if err != nil {
			return "", fmt.Errorf("persist exchange: %w", err)
		}

		s.logger.Info("relay exchange persisted", "chat_id", chatID, "user_id", userID)
	}

	return reply, nil
}

func (s *chatService) validateRelayRequest(req *services.RelayRequest) error {
	if err := validation.Validate(req.Messages, validation.Required); err != nil {
		return fmt.Errorf("messages: %v", err)
	}
	for i, m := range req.Messages {
		err := validation.ValidateStruct(&m,
			validation.Field(&m.Role, validation.Required, validation.In(
				models.RoleUser, models.RoleAssistant, models.RoleSystem,
			)),
			validation.Field(&m.Content, validation.Required, validation.Length(1, config.MaxMessageLength)),
		)
		if err != nil {
			return fmt.Errorf("messages[%d]: %v", i, err)
		}
	}
	return nil
}

// CreateChat creates a conversation row
func (s *chatService) CreateChat(ctx context.Context, userID string, req *services.CreateChatRequest) (*models.Chat, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxChatTitleLength)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	chat := &models.Chat{
		UserID:    userID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat created", "id", chat.ID, "user_id", userID)
	return chat, nil
}

// GetChat retrieves a single chat
func (s *chatService) GetChat(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	return s.chatRepo.GetChat(ctx, chatID, userID)
}

// ListChats returns the user's non-archived chats
func (s *chatService) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	return s.chatRepo.ListChats(ctx, userID)
}

// UpdateChat patches title/pinned/archived
func (s *chatService) UpdateChat(ctx context.Context, chatID, userID string, req *services.UpdateChatRequest) (*models.Chat, error) {
	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required, validation.Length(1, config.MaxChatTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
	}

	chat, err := s.chatRepo.GetChat(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		chat.Title = *req.Title
	}
	if req.IsPinned != nil {
		chat.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		chat.IsArchived = *req.IsArchived
	}
	chat.UpdatedAt = time.Now()

	if err := s.chatRepo.UpdateChat(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// DeleteChat removes a chat (messages cascade in the schema)
func (s *chatService) DeleteChat(ctx context.Context, chatID, userID string) error {
	if err := s.chatRepo.DeleteChat(ctx, chatID, userID); err != nil {
		return err
	}
	s.logger.Info("chat deleted", "id", chatID, "user_id", userID)
	return nil
}

// ListMessages returns a chat's history after an ownership check
func (s *chatService) ListMessages(ctx context.Context, chatID, userID string) ([]models.Message, error) {
	if _, err := s.chatRepo.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListMessages(ctx, chatID)
}
