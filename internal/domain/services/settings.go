package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// UpdatePreferencesRequest patches the user's settings row. Nil fields keep
// their current (or default) value, so partial saves from any settings tab
// never clobber the others.
type UpdatePreferencesRequest struct {
	BaseStyleTone          *string `json:"base_style_tone,omitempty"`
	CharacteristicWarm     *string `json:"characteristic_warm,omitempty"`
	CharacteristicEnthused *string `json:"characteristic_enthusiastic,omitempty"`
	CharacteristicHeaders  *string `json:"characteristic_headers_lists,omitempty"`
	CharacteristicEmoji    *string `json:"characteristic_emoji,omitempty"`
	CustomInstructions     *string `json:"custom_instructions,omitempty"`
	AboutYouNickname       *string `json:"about_you_nickname,omitempty"`
	AboutYouOccupation     *string `json:"about_you_occupation,omitempty"`
	AboutYouMore           *string `json:"about_you_more,omitempty"`
	ReferenceSavedMemories *bool   `json:"reference_saved_memories,omitempty"`
	ReferenceChatHistory   *bool   `json:"reference_chat_history,omitempty"`

	Appearance     *string `json:"appearance,omitempty"`
	AccentColor    *string `json:"accent_color,omitempty"`
	Language       *string `json:"language,omitempty"`
	SpokenLanguage *string `json:"spoken_language,omitempty"`
	Voice          *string `json:"voice,omitempty"`

	WebSearch       *bool `json:"web_search,omitempty"`
	CodeInterpreter *bool `json:"code_interpreter,omitempty"`
	Canvas          *bool `json:"canvas,omitempty"`
	VoiceMode       *bool `json:"voice_mode,omitempty"`
	AdvancedVoice   *bool `json:"advanced_voice,omitempty"`
	ConnectorSearch *bool `json:"connector_search,omitempty"`

	NotifResponses       *string `json:"notif_responses,omitempty"`
	NotifGroupChats      *string `json:"notif_group_chats,omitempty"`
	NotifTasks           *string `json:"notif_tasks,omitempty"`
	NotifProjects        *string `json:"notif_projects,omitempty"`
	NotifRecommendations *string `json:"notif_recommendations,omitempty"`

	ImproveModel *bool `json:"improve_model,omitempty"`
}

// CreateFamilyMemberRequest invites a family member by email or phone.
type CreateFamilyMemberRequest struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  string  `json:"role"`
}

// SettingsService covers the settings screens: preferences, family members
// and order history.
type SettingsService interface {
	// GetPreferences returns the saved row, or defaults for users who have
	// never saved settings.
	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*models.UserPreferences, error)

	ListFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error)
	AddFamilyMember(ctx context.Context, userID string, req *CreateFamilyMemberRequest) (*models.FamilyMember, error)
	UpdateFamilyMemberStatus(ctx context.Context, memberID, userID, status string) error
	RemoveFamilyMember(ctx context.Context, memberID, userID string) error

	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}
