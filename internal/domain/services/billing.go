package services

import (
	"context"

	"ayitichat/internal/domain/models"
)

// CheckoutRequest starts a Stripe checkout for a plan.
type CheckoutRequest struct {
	PlanID string `json:"plan_id"`
}

// CheckoutResult carries the hosted checkout page URL.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// BillingService exposes the plans catalog, checkout, billing reads and the
// Stripe webhook.
type BillingService interface {
	Plans() []models.Plan
	CreateCheckout(ctx context.Context, userID, email string, req *CheckoutRequest) (*CheckoutResult, error)

	// GetSubscription returns domain.ErrNotFound for free-plan users.
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	ListInvoices(ctx context.Context, userID string) ([]models.Invoice, error)

	// HandleWebhook verifies the signature and applies the event. Unhandled
	// event types are acknowledged without effect.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
