package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewOrderRepository creates a new PostgresOrderRepository
func NewOrderRepository(config *RepositoryConfig) repositories.OrderRepository {
	return &PostgresOrderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts an order row
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, product_name, amount, currency, status, billing_cycle, renewal_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, r.tables.Orders)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		order.UserID,
		order.ProductName,
		order.Amount,
		order.Currency,
		order.Status,
		order.BillingCycle,
		order.RenewalDate,
		order.CreatedAt,
	).Scan(&order.ID, &order.CreatedAt)

	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

// List returns the user's orders, newest first
func (r *PostgresOrderRepository) List(ctx context.Context, userID string) ([]models.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, product_name, amount, currency, status, billing_cycle, renewal_date, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Orders)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.UserID, &o.ProductName, &o.Amount, &o.Currency,
			&o.Status, &o.BillingCycle, &o.RenewalDate, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}
