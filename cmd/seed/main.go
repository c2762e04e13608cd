package main

import (
	"context"
	"flag"
	"log"
	"time"

	"ayitichat/internal/auth"
	"ayitichat/internal/config"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	testUserEmail    = "test@ayitichat.dev"
	testUserPassword = "test-password-123"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: never drop prod tables
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Create (or reuse) a confirmed test user via the Supabase admin API
	adminClient := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	userID, err := ensureTestUser(adminClient)
	if err != nil {
		log.Fatalf("Failed to ensure test user: %v", err)
	}
	log.Printf("👤 Test user ready: %s (%s)", testUserEmail, userID)

	if err := seedSampleChat(ctx, pool, tables, userID); err != nil {
		log.Fatalf("Failed to seed sample chat: %v", err)
	}

	log.Println("✅ Seeding complete")
}

// ensureTestUser creates the dev login if it doesn't already exist.
func ensureTestUser(adminClient *auth.AdminClient) (string, error) {
	users, err := adminClient.ListUsers()
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.Email == testUserEmail {
			return u.ID, nil
		}
	}
	return adminClient.CreateUser(testUserEmail, testUserPassword)
}

// seedSampleChat inserts one greeting conversation for the test user.
func seedSampleChat(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, userID string) error {
	var chatID string
	err := pool.QueryRow(ctx, `
		INSERT INTO `+tables.Chats+` (user_id, title, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`, userID, "Byenveni!").Scan(&chatID)
	if err != nil {
		return err
	}

	turns := []struct {
		role    string
		content string
	}{
		{models.RoleUser, "Bonjou! Kisa ou ka fè pou mwen?"},
		{models.RoleAssistant, "Bonjou! Mwen ka ede w ak kesyon, tradiksyon, ekri tèks ak anpil lòt bagay. Kijan mwen ka ede w jodi a?"},
	}
	for i, t := range turns {
		_, err := pool.Exec(ctx, `
			INSERT INTO `+tables.Messages+` (chat_id, role, content, created_at)
			VALUES ($1, $2, $3, $4)
		`, chatID, t.role, t.content, time.Now().Add(time.Duration(i)*time.Second))
		if err != nil {
			return err
		}
	}

	log.Printf("💬 Sample chat seeded: %s", chatID)
	return nil
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Chats + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			is_pinned BOOLEAN NOT NULL DEFAULT FALSE,
			is_archived BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Messages + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			chat_id UUID NOT NULL REFERENCES ` + tables.Chats + `(id) ON DELETE CASCADE,
			role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
			content TEXT NOT NULL,
			attachments JSONB,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			project_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'generating' CHECK (status IN ('generating', 'ready', 'error')),
			model TEXT NOT NULL DEFAULT '',
			github_repo TEXT,
			publish_url TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ProjectFiles + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			project_id UUID NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			file_path TEXT NOT NULL,
			file_content TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT 'text',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.UserPreferences + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL UNIQUE,
			base_style_tone TEXT NOT NULL DEFAULT 'default',
			characteristic_warm TEXT NOT NULL DEFAULT 'default',
			characteristic_enthusiastic TEXT NOT NULL DEFAULT 'default',
			characteristic_headers_lists TEXT NOT NULL DEFAULT 'default',
			characteristic_emoji TEXT NOT NULL DEFAULT 'default',
			custom_instructions TEXT,
			about_you_nickname TEXT,
			about_you_occupation TEXT,
			about_you_more TEXT,
			reference_saved_memories BOOLEAN NOT NULL DEFAULT TRUE,
			reference_chat_history BOOLEAN NOT NULL DEFAULT TRUE,
			appearance TEXT NOT NULL DEFAULT 'system',
			accent_color TEXT NOT NULL DEFAULT 'default',
			language TEXT NOT NULL DEFAULT 'auto',
			spoken_language TEXT NOT NULL DEFAULT 'auto',
			voice TEXT NOT NULL DEFAULT 'ember',
			web_search BOOLEAN NOT NULL DEFAULT FALSE,
			code_interpreter BOOLEAN NOT NULL DEFAULT FALSE,
			canvas BOOLEAN NOT NULL DEFAULT FALSE,
			voice_mode BOOLEAN NOT NULL DEFAULT FALSE,
			advanced_voice BOOLEAN NOT NULL DEFAULT FALSE,
			connector_search BOOLEAN NOT NULL DEFAULT FALSE,
			notif_responses TEXT NOT NULL DEFAULT 'push',
			notif_group_chats TEXT NOT NULL DEFAULT 'push',
			notif_tasks TEXT NOT NULL DEFAULT 'push',
			notif_projects TEXT NOT NULL DEFAULT 'push',
			notif_recommendations TEXT NOT NULL DEFAULT 'push',
			improve_model BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.FamilyMembers + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			email TEXT,
			phone TEXT,
			role TEXT NOT NULL CHECK (role IN ('parent', 'child')),
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'declined')),
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Orders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			product_name TEXT NOT NULL,
			amount BIGINT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'usd',
			status TEXT NOT NULL DEFAULT 'active',
			billing_cycle TEXT,
			renewal_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Subscriptions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			stripe_customer_id TEXT NOT NULL DEFAULT '',
			stripe_subscription_id TEXT NOT NULL UNIQUE,
			plan_id TEXT NOT NULL DEFAULT '',
			plan_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT '',
			current_period_start TIMESTAMPTZ,
			current_period_end TIMESTAMPTZ,
			cancel_at_period_end BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.PaymentMethods + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			stripe_payment_method_id TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL DEFAULT 'card',
			last4 TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			exp_month INTEGER NOT NULL DEFAULT 0,
			exp_year INTEGER NOT NULL DEFAULT 0,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Invoices + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			stripe_invoice_id TEXT NOT NULL UNIQUE,
			amount_paid BIGINT NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'usd',
			status TEXT NOT NULL DEFAULT '',
			invoice_pdf TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AdminUsers + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL UNIQUE,
			email TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			created_by UUID
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Roles + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Permissions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			resource TEXT NOT NULL,
			action TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.RolePermissions + ` (
			role_id UUID NOT NULL REFERENCES ` + tables.Roles + `(id) ON DELETE CASCADE,
			permission_id UUID NOT NULL REFERENCES ` + tables.Permissions + `(id) ON DELETE CASCADE,
			PRIMARY KEY (role_id, permission_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.UserRoles + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			role_id UUID NOT NULL REFERENCES ` + tables.Roles + `(id) ON DELETE CASCADE,
			assigned_at TIMESTAMPTZ DEFAULT NOW(),
			assigned_by UUID,
			UNIQUE(user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.SharedConversations + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			chat_id UUID NOT NULL REFERENCES ` + tables.Chats + `(id) ON DELETE CASCADE,
			share_token TEXT NOT NULL UNIQUE,
			is_public BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			expires_at TIMESTAMPTZ
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chats_user_updated ON ` + tables.Chats + `(user_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `messages_chat_created ON ` + tables.Messages + `(chat_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `projects_user ON ` + tables.Projects + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `project_files_project ON ` + tables.ProjectFiles + `(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `family_members_user ON ` + tables.FamilyMembers + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `orders_user ON ` + tables.Orders + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `subscriptions_user ON ` + tables.Subscriptions + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `subscriptions_customer ON ` + tables.Subscriptions + `(stripe_customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `shared_conversations_chat ON ` + tables.SharedConversations + `(chat_id)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.SharedConversations,
		tables.UserRoles,
		tables.RolePermissions,
		tables.Permissions,
		tables.Roles,
		tables.AdminUsers,
		tables.Invoices,
		tables.PaymentMethods,
		tables.Subscriptions,
		tables.Orders,
		tables.FamilyMembers,
		tables.UserPreferences,
		tables.ProjectFiles,
		tables.Projects,
		tables.Messages,
		tables.Chats,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}
