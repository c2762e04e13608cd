package models

import "time"

// UserPreferences is a flat per-user settings row. Fields mirror the settings
// screens: personalization, general, advanced, notifications, data controls.
type UserPreferences struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	// Personalization
	BaseStyleTone          string  `json:"base_style_tone" db:"base_style_tone"`
	CharacteristicWarm     string  `json:"characteristic_warm" db:"characteristic_warm"`
	CharacteristicEnthused string  `json:"characteristic_enthusiastic" db:"characteristic_enthusiastic"`
	CharacteristicHeaders  string  `json:"characteristic_headers_lists" db:"characteristic_headers_lists"`
	CharacteristicEmoji    string  `json:"characteristic_emoji" db:"characteristic_emoji"`
	CustomInstructions     *string `json:"custom_instructions" db:"custom_instructions"`
	AboutYouNickname       *string `json:"about_you_nickname" db:"about_you_nickname"`
	AboutYouOccupation     *string `json:"about_you_occupation" db:"about_you_occupation"`
	AboutYouMore           *string `json:"about_you_more" db:"about_you_more"`
	ReferenceSavedMemories bool    `json:"reference_saved_memories" db:"reference_saved_memories"`
	ReferenceChatHistory   bool    `json:"reference_chat_history" db:"reference_chat_history"`

	// General settings
	Appearance     string `json:"appearance" db:"appearance"`
	AccentColor    string `json:"accent_color" db:"accent_color"`
	Language       string `json:"language" db:"language"`
	SpokenLanguage string `json:"spoken_language" db:"spoken_language"`
	Voice          string `json:"voice" db:"voice"`

	// Advanced settings
	WebSearch       bool `json:"web_search" db:"web_search"`
	CodeInterpreter bool `json:"code_interpreter" db:"code_interpreter"`
	Canvas          bool `json:"canvas" db:"canvas"`
	VoiceMode       bool `json:"voice_mode" db:"voice_mode"`
	AdvancedVoice   bool `json:"advanced_voice" db:"advanced_voice"`
	ConnectorSearch bool `json:"connector_search" db:"connector_search"`

	// Notifications
	NotifResponses       string `json:"notif_responses" db:"notif_responses"`
	NotifGroupChats      string `json:"notif_group_chats" db:"notif_group_chats"`
	NotifTasks           string `json:"notif_tasks" db:"notif_tasks"`
	NotifProjects        string `json:"notif_projects" db:"notif_projects"`
	NotifRecommendations string `json:"notif_recommendations" db:"notif_recommendations"`

	// Data controls
	ImproveModel bool `json:"improve_model" db:"improve_model"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultPreferences returns the row shape handed to users who have never
// saved settings.
func DefaultPreferences(userID string) *UserPreferences {
	now := time.Now()
	return &UserPreferences{
		UserID:                 userID,
		BaseStyleTone:          "default",
		CharacteristicWarm:     "default",
		CharacteristicEnthused: "default",
		CharacteristicHeaders:  "default",
		CharacteristicEmoji:    "default",
		ReferenceSavedMemories: true,
		ReferenceChatHistory:   true,
		Appearance:             "system",
		AccentColor:            "default",
		Language:               "auto",
		SpokenLanguage:         "auto",
		Voice:                  "ember",
		NotifResponses:         "push",
		NotifGroupChats:        "push",
		NotifTasks:             "push",
		NotifProjects:          "push",
		NotifRecommendations:   "push",
		ImproveModel:           true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// FamilyMember is a parental-controls row linking an invited member to the
// owning account.
type FamilyMember struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Role      string    `json:"role" db:"role"`     // parent|child
	Status    string    `json:"status" db:"status"` // pending|accepted|declined
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Order is a purchase record shown on the orders settings tab.
type Order struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	ProductName string     `json:"product_name" db:"product_name"`
	Amount      int64      `json:"amount" db:"amount"` // minor units
	Currency    string     `json:"currency" db:"currency"`
	Status      string     `json:"status" db:"status"` // active|cancelled|expired
	BillingCycle *string   `json:"billing_cycle" db:"billing_cycle"`
	RenewalDate  *time.Time `json:"renewal_date" db:"renewal_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
