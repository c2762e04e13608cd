package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
)

// settingsService implements the SettingsService interface
type settingsService struct {
	prefsRepo  repositories.UserPreferencesRepository
	familyRepo repositories.FamilyMemberRepository
	orderRepo  repositories.OrderRepository
	logger     *slog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	prefsRepo repositories.UserPreferencesRepository,
	familyRepo repositories.FamilyMemberRepository,
	orderRepo repositories.OrderRepository,
	logger *slog.Logger,
) services.SettingsService {
	return &settingsService{
		prefsRepo:  prefsRepo,
		familyRepo: familyRepo,
		orderRepo:  orderRepo,
		logger:     logger,
	}
}

// GetPreferences returns the saved row, or defaults if nothing was ever saved.
// Defaults are not written on read; the row only exists once the user saves.
func (s *settingsService) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return models.DefaultPreferences(userID), nil
		}
		return nil, err
	}
	return prefs, nil
}

// UpdatePreferences applies the patch over the current (or default) row and
// upserts the result.
func (s *settingsService) UpdatePreferences(ctx context.Context, userID string, req *services.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	if err := s.validatePreferencesPatch(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyPreferencesPatch(prefs, req)
	prefs.UpdatedAt = time.Now()

	if err := s.prefsRepo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}

	s.logger.Info("preferences saved", "user_id", userID)
	return prefs, nil
}

func (s *settingsService) validatePreferencesPatch(req *services.UpdatePreferencesRequest) error {
	if req.Appearance != nil {
		if err := validation.Validate(*req.Appearance, validation.In("system", "light", "dark")); err != nil {
			return fmt.Errorf("appearance: %v", err)
		}
	}
	for name, v := range map[string]*string{
		"notif_responses":       req.NotifResponses,
		"notif_group_chats":     req.NotifGroupChats,
		"notif_tasks":           req.NotifTasks,
		"notif_projects":        req.NotifProjects,
		"notif_recommendations": req.NotifRecommendations,
	} {
		if v == nil {
			continue
		}
		if err := validation.Validate(*v, validation.In("push", "email", "none")); err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}
	}
	return nil
}

func applyPreferencesPatch(p *models.UserPreferences, req *services.UpdatePreferencesRequest) {
	if req.BaseStyleTone != nil {
		p.BaseStyleTone = *req.BaseStyleTone
	}
	if req.CharacteristicWarm != nil {
		p.CharacteristicWarm = *req.CharacteristicWarm
	}
	if req.CharacteristicEnthused != nil {
		p.CharacteristicEnthused = *req.CharacteristicEnthused
	}
	if req.CharacteristicHeaders != nil {
		p.CharacteristicHeaders = *req.CharacteristicHeaders
	}
	if req.CharacteristicEmoji != nil {
		p.CharacteristicEmoji = *req.CharacteristicEmoji
	}
	if req.CustomInstructions != nil {
		p.CustomInstructions = req.CustomInstructions
	}
	if req.AboutYouNickname != nil {
		p.AboutYouNickname = req.AboutYouNickname
	}
	if req.AboutYouOccupation != nil {
		p.AboutYouOccupation = req.AboutYouOccupation
	}
	if req.AboutYouMore != nil {
		p.AboutYouMore = req.AboutYouMore
	}
	if req.ReferenceSavedMemories != nil {
		p.ReferenceSavedMemories = *req.ReferenceSavedMemories
	}
	if req.ReferenceChatHistory != nil {
		p.ReferenceChatHistory = *req.ReferenceChatHistory
	}
	if req.Appearance != nil {
		p.Appearance = *req.Appearance
	}
	if req.AccentColor != nil {
		p.AccentColor = *req.AccentColor
	}
	if req.Language != nil {
		p.Language = *req.Language
	}
	if req.SpokenLanguage != nil {
		p.SpokenLanguage = *req.SpokenLanguage
	}
	if req.Voice != nil {
		p.Voice = *req.Voice
	}
	if req.WebSearch != nil {
		p.WebSearch = *req.WebSearch
	}
	if req.CodeInterpreter != nil {
		p.CodeInterpreter = *req.CodeInterpreter
	}
	if req.Canvas != nil {
		p.Canvas = *req.Canvas
	}
	if req.VoiceMode != nil {
		p.VoiceMode = *req.VoiceMode
	}
	if req.AdvancedVoice != nil {
		p.AdvancedVoice = *req.AdvancedVoice
	}
	if req.ConnectorSearch != nil {
		p.ConnectorSearch = *req.ConnectorSearch
	}
	if req.NotifResponses != nil {
		p.NotifResponses = *req.NotifResponses
	}
	if req.NotifGroupChats != nil {
		p.NotifGroupChats = *req.NotifGroupChats
	}
	if req.NotifTasks != nil {
		p.NotifTasks = *req.NotifTasks
	}
	if req.NotifProjects != nil {
		p.NotifProjects = *req.NotifProjects
	}
	if req.NotifRecommendations != nil {
		p.NotifRecommendations = *req.NotifRecommendations
	}
	if req.ImproveModel != nil {
		p.ImproveModel = *req.ImproveModel
	}
}

// ListFamilyMembers returns the user's family members
func (s *settingsService) ListFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	return s.familyRepo.List(ctx, userID)
}

// AddFamilyMember invites a family member by email or phone
func (s *settingsService) AddFamilyMember(ctx context.Context, userID string, req *services.CreateFamilyMemberRequest) (*models.FamilyMember, error) {
	if err := s.validateFamilyMemberRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	member := &models.FamilyMember{
		UserID:    userID,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	if err := s.familyRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("family member invited", "id", member.ID, "user_id", userID, "role", member.Role)
	return member, nil
}

func (s *settingsService) validateFamilyMemberRequest(req *services.CreateFamilyMemberRequest) error {
	if req.Email == nil && req.Phone == nil {
		return fmt.Errorf("either email or phone is required")
	}
	if req.Email != nil {
		if err := validation.Validate(*req.Email, validation.Required, is.Email); err != nil {
			return fmt.Errorf("email: %v", err)
		}
	}
	return validation.Validate(req.Role, validation.Required, validation.In("parent", "child"))
}

// UpdateFamilyMemberStatus moves an invitation between statuses
func (s *settingsService) UpdateFamilyMemberStatus(ctx context.Context, memberID, userID, status string) error {
	if err := validation.Validate(status, validation.Required, validation.In("pending", "accepted", "declined")); err != nil {
		return fmt.Errorf("%w: status: %v", domain.ErrValidation, err)
	}
	return s.familyRepo.UpdateStatus(ctx, memberID, userID, status)
}

// RemoveFamilyMember deletes an invitation
func (s *settingsService) RemoveFamilyMember(ctx context.Context, memberID, userID string) error {
	return s.familyRepo.Delete(ctx, memberID, userID)
}

// ListOrders returns the user's purchase history
func (s *settingsService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.List(ctx, userID)
}
