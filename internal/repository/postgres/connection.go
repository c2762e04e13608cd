package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ayitichat/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Chats               string
	Messages            string
	Projects            string
	ProjectFiles        string
	UserPreferences     string
	FamilyMembers       string
	Orders              string
	Subscriptions       string
	PaymentMethods      string
	Invoices            string
	AdminUsers          string
	Roles               string
	Permissions         string
	RolePermissions     string
	UserRoles           string
	SharedConversations string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Chats:               prefix + "chats",
		Messages:            prefix + "messages",
		Projects:            prefix + "projects",
		ProjectFiles:        prefix + "project_files",
		UserPreferences:     prefix + "user_preferences",
		FamilyMembers:       prefix + "family_members",
		Orders:              prefix + "orders",
		Subscriptions:       prefix + "subscriptions",
		PaymentMethods:      prefix + "payment_methods",
		Invoices:            prefix + "invoices",
		AdminUsers:          prefix + "admin_users",
		Roles:               prefix + "roles",
		Permissions:         prefix + "permissions",
		RolePermissions:     prefix + "role_permissions",
		UserRoles:           prefix + "user_roles",
		SharedConversations: prefix + "shared_conversations",
	}
}

// CreateConnectionPool creates a new pgx connection pool with automatic
// PgBouncer compatibility.
//
// Supabase's transaction pooler (port 6543) does not support prepared
// statements; when that port is detected the pool switches to
// QueryExecModeCacheDescribe, which still uses the extended protocol (needed
// for JSONB encoding of attachment lists) but caches statement descriptions
// instead of prepared statements. An explicit default_query_exec_mode in the
// connection string takes precedence over the auto-detection. Direct
// connections on 5432 keep the default prepared-statement mode.
//
// Dynamic table prefixes (dev_/test_/prod_) are interpolated into SQL before
// it reaches the database, so each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
