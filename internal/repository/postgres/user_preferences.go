package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
)

// PostgresUserPreferencesRepository implements UserPreferencesRepository using PostgreSQL
type PostgresUserPreferencesRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserPreferencesRepository creates a new PostgresUserPreferencesRepository
func NewUserPreferencesRepository(config *RepositoryConfig) repositories.UserPreferencesRepository {
	return &PostgresUserPreferencesRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const prefsColumns = `
	id, user_id,
	base_style_tone, characteristic_warm, characteristic_enthusiastic,
	characteristic_headers_lists, characteristic_emoji,
	custom_instructions, about_you_nickname, about_you_occupation, about_you_more,
	reference_saved_memories, reference_chat_history,
	appearance, accent_color, language, spoken_language, voice,
	web_search, code_interpreter, canvas, voice_mode, advanced_voice, connector_search,
	notif_responses, notif_group_chats, notif_tasks, notif_projects, notif_recommendations,
	improve_model, created_at, updated_at`

func scanPrefs(row interface{ Scan(...interface{}) error }, p *models.UserPreferences) error {
	return row.Scan(
		&p.ID, &p.UserID,
		&p.BaseStyleTone, &p.CharacteristicWarm, &p.CharacteristicEnthused,
		&p.CharacteristicHeaders, &p.CharacteristicEmoji,
		&p.CustomInstructions, &p.AboutYouNickname, &p.AboutYouOccupation, &p.AboutYouMore,
		&p.ReferenceSavedMemories, &p.ReferenceChatHistory,
		&p.Appearance, &p.AccentColor, &p.Language, &p.SpokenLanguage, &p.Voice,
		&p.WebSearch, &p.CodeInterpreter, &p.Canvas, &p.VoiceMode, &p.AdvancedVoice, &p.ConnectorSearch,
		&p.NotifResponses, &p.NotifGroupChats, &p.NotifTasks, &p.NotifProjects, &p.NotifRecommendations,
		&p.ImproveModel, &p.CreatedAt, &p.UpdatedAt,
	)
}

// GetByUserID returns the user's settings row, or domain.ErrNotFound if they
// have never saved settings.
func (r *PostgresUserPreferencesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1`, prefsColumns, r.tables.UserPreferences)

	var prefs models.UserPreferences
	executor := GetExecutor(ctx, r.pool)
	if err := scanPrefs(executor.QueryRow(ctx, query, userID), &prefs); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("preferences for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	return &prefs, nil
}

// Upsert inserts or replaces the user's settings row (unique on user_id)
func (r *PostgresUserPreferencesRepository) Upsert(ctx context.Context, p *models.UserPreferences) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			user_id,
			base_style_tone, characteristic_warm, characteristic_enthusiastic,
			characteristic_headers_lists, characteristic_emoji,
			custom_instructions, about_you_nickname, about_you_occupation, about_you_more,
			reference_saved_memories, reference_chat_history,
			appearance, accent_color, language, spoken_language, voice,
			web_search, code_interpreter, canvas, voice_mode, advanced_voice, connector_search,
			notif_responses, notif_group_chats, notif_tasks, notif_projects, notif_recommendations,
			improve_model, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
		)
		ON CONFLICT (user_id) DO UPDATE SET
			base_style_tone = EXCLUDED.base_style_tone,
			characteristic_warm = EXCLUDED.characteristic_warm,
			characteristic_enthusiastic = EXCLUDED.characteristic_enthusiastic,
			characteristic_headers_lists = EXCLUDED.characteristic_headers_lists,
			characteristic_emoji = EXCLUDED.characteristic_emoji,
			custom_instructions = EXCLUDED.custom_instructions,
			about_you_nickname = EXCLUDED.about_you_nickname,
			about_you_occupation = EXCLUDED.about_you_occupation,
			about_you_more = EXCLUDED.about_you_more,
			reference_saved_memories = EXCLUDED.reference_saved_memories,
			reference_chat_history = EXCLUDED.reference_chat_history,
			appearance = EXCLUDED.appearance,
			accent_color = EXCLUDED.accent_color,
			language = EXCLUDED.language,
			spoken_language = EXCLUDED.spoken_language,
			voice = EXCLUDED.voice,
			web_search = EXCLUDED.web_search,
			code_interpreter = EXCLUDED.code_interpreter,
			canvas = EXCLUDED.canvas,
			voice_mode = EXCLUDED.voice_mode,
			advanced_voice = EXCLUDED.advanced_voice,
			connector_search = EXCLUDED.connector_search,
			notif_responses = EXCLUDED.notif_responses,
			notif_group_chats = EXCLUDED.notif_group_chats,
			notif_tasks = EXCLUDED.notif_tasks,
			notif_projects = EXCLUDED.notif_projects,
			notif_recommendations = EXCLUDED.notif_recommendations,
			improve_model = EXCLUDED.improve_model,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`, r.tables.UserPreferences)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		p.UserID,
		p.BaseStyleTone, p.CharacteristicWarm, p.CharacteristicEnthused,
		p.CharacteristicHeaders, p.CharacteristicEmoji,
		p.CustomInstructions, p.AboutYouNickname, p.AboutYouOccupation, p.AboutYouMore,
		p.ReferenceSavedMemories, p.ReferenceChatHistory,
		p.Appearance, p.AccentColor, p.Language, p.SpokenLanguage, p.Voice,
		p.WebSearch, p.CodeInterpreter, p.Canvas, p.VoiceMode, p.AdvancedVoice, p.ConnectorSearch,
		p.NotifResponses, p.NotifGroupChats, p.NotifTasks, p.NotifProjects, p.NotifRecommendations,
		p.ImproveModel, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}

	return nil
}
