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

// PostgresSubscriptionRepository implements SubscriptionRepository using PostgreSQL
type PostgresSubscriptionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewSubscriptionRepository(config *RepositoryConfig) repositories.SubscriptionRepository {
	return &PostgresSubscriptionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByUserID returns the user's subscription mirror row
func (r *PostgresSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, stripe_customer_id, stripe_subscription_id, plan_id, plan_name,
		       status, current_period_start, current_period_end, cancel_at_period_end,
		       created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`, r.tables.Subscriptions)

	var sub models.Subscription
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&sub.ID, &sub.UserID, &sub.StripeCustomerID, &sub.StripeSubscriptionID,
		&sub.PlanID, &sub.PlanName, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.CreatedAt, &sub.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("subscription for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	return &sub, nil
}

// GetByCustomerID resolves a Stripe customer id back to a local user
func (r *PostgresSubscriptionRepository) GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, stripe_customer_id, stripe_subscription_id, plan_id, plan_name,
		       status, current_period_start, current_period_end, cancel_at_period_end,
		       created_at, updated_at
		FROM %s
		WHERE stripe_customer_id = $1
		ORDER BY updated_at DESC
		LIMIT 1
	`, r.tables.Subscriptions)

	var sub models.Subscription
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, customerID).Scan(
		&sub.ID, &sub.UserID, &sub.StripeCustomerID, &sub.StripeSubscriptionID,
		&sub.PlanID, &sub.PlanName, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CancelAtPeriodEnd,
		&sub.CreatedAt, &sub.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("subscription for customer %s: %w", customerID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get subscription by customer: %w", err)
	}

	return &sub, nil
}

// Upsert keys on stripe_subscription_id so webhook replays are idempotent
func (r *PostgresSubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			user_id, stripe_customer_id, stripe_subscription_id, plan_id, plan_name,
			status, current_period_start, current_period_end, cancel_at_period_end,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (stripe_subscription_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			plan_name = EXCLUDED.plan_name,
			status = EXCLUDED.status,
			current_period_start = EXCLUDED.current_period_start,
			current_period_end = EXCLUDED.current_period_end,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`, r.tables.Subscriptions)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		sub.UserID, sub.StripeCustomerID, sub.StripeSubscriptionID, sub.PlanID, sub.PlanName,
		sub.Status, sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd,
		sub.CreatedAt, sub.UpdatedAt,
	).Scan(&sub.ID, &sub.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}

	return nil
}

// PostgresPaymentMethodRepository implements PaymentMethodRepository using PostgreSQL
type PostgresPaymentMethodRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPaymentMethodRepository creates a new PostgresPaymentMethodRepository
func NewPaymentMethodRepository(config *RepositoryConfig) repositories.PaymentMethodRepository {
	return &PostgresPaymentMethodRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List returns the user's stored card summaries, default first
func (r *PostgresPaymentMethodRepository) List(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, stripe_payment_method_id, type, last4, brand,
		       exp_month, exp_year, is_default, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`, r.tables.PaymentMethods)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		var pm models.PaymentMethod
		err := rows.Scan(
			&pm.ID, &pm.UserID, &pm.StripePaymentMethodID, &pm.Type, &pm.Last4,
			&pm.Brand, &pm.ExpMonth, &pm.ExpYear, &pm.IsDefault, &pm.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment methods: %w", err)
	}

	if methods == nil {
		methods = []models.PaymentMethod{}
	}

	return methods, nil
}

// Upsert keys on stripe_payment_method_id
func (r *PostgresPaymentMethodRepository) Upsert(ctx context.Context, pm *models.PaymentMethod) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			user_id, stripe_payment_method_id, type, last4, brand,
			exp_month, exp_year, is_default, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (stripe_payment_method_id) DO UPDATE SET
			type = EXCLUDED.type,
			last4 = EXCLUDED.last4,
			brand = EXCLUDED.brand,
			exp_month = EXCLUDED.exp_month,
			exp_year = EXCLUDED.exp_year,
			is_default = EXCLUDED.is_default
		RETURNING id, created_at
	`, r.tables.PaymentMethods)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		pm.UserID, pm.StripePaymentMethodID, pm.Type, pm.Last4, pm.Brand,
		pm.ExpMonth, pm.ExpYear, pm.IsDefault, pm.CreatedAt,
	).Scan(&pm.ID, &pm.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert payment method: %w", err)
	}

	return nil
}

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewInvoiceRepository creates a new PostgresInvoiceRepository
func NewInvoiceRepository(config *RepositoryConfig) repositories.InvoiceRepository {
	return &PostgresInvoiceRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List returns the user's invoices, newest first
func (r *PostgresInvoiceRepository) List(ctx context.Context, userID string) ([]models.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, stripe_invoice_id, amount_paid, currency, status, invoice_pdf, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.Invoices)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		err := rows.Scan(
			&inv.ID, &inv.UserID, &inv.StripeInvoiceID, &inv.AmountPaid,
			&inv.Currency, &inv.Status, &inv.InvoicePDF, &inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	if invoices == nil {
		invoices = []models.Invoice{}
	}

	return invoices, nil
}

// Upsert keys on stripe_invoice_id so webhook replays are idempotent
func (r *PostgresInvoiceRepository) Upsert(ctx context.Context, inv *models.Invoice) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, stripe_invoice_id, amount_paid, currency, status, invoice_pdf, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stripe_invoice_id) DO UPDATE SET
			amount_paid = EXCLUDED.amount_paid,
			status = EXCLUDED.status,
			invoice_pdf = EXCLUDED.invoice_pdf
		RETURNING id, created_at
	`, r.tables.Invoices)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		inv.UserID, inv.StripeInvoiceID, inv.AmountPaid, inv.Currency,
		inv.Status, inv.InvoicePDF, inv.CreatedAt,
	).Scan(&inv.ID, &inv.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert invoice: %w", err)
	}

	return nil
}
