package repositories

import (
	"context"

	"ayitichat/internal/domain/models"
)

// SubscriptionRepository persists Stripe subscription mirrors.
type SubscriptionRepository interface {
	// GetByUserID returns domain.ErrNotFound for users on the free plan.
	GetByUserID(ctx context.Context, userID string) (*models.Subscription, error)
	// GetByCustomerID resolves webhook events that only carry a Stripe
	// customer id back to a local user.
	GetByCustomerID(ctx context.Context, customerID string) (*models.Subscription, error)
	// Upsert keys on stripe_subscription_id; webhook deliveries are
	// at-least-once so replays must be idempotent.
	Upsert(ctx context.Context, sub *models.Subscription) error
}

// PaymentMethodRepository persists stored card summaries.
type PaymentMethodRepository interface {
	List(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	Upsert(ctx context.Context, pm *models.PaymentMethod) error
}

// InvoiceRepository persists paid-invoice records.
type InvoiceRepository interface {
	List(ctx context.Context, userID string) ([]models.Invoice, error)
	Upsert(ctx context.Context, inv *models.Invoice) error
}
