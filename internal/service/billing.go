package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stripe/stripe-go/v81"

	"ayitichat/internal/billing"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/repositories"
	"ayitichat/internal/domain/services"
)

// billingService implements the BillingService interface
type billingService struct {
	gateway    billing.Gateway
	subRepo    repositories.SubscriptionRepository
	pmRepo     repositories.PaymentMethodRepository
	invRepo    repositories.InvoiceRepository
	orderRepo  repositories.OrderRepository
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	gateway billing.Gateway,
	subRepo repositories.SubscriptionRepository,
	pmRepo repositories.PaymentMethodRepository,
	invRepo repositories.InvoiceRepository,
	orderRepo repositories.OrderRepository,
	successURL, cancelURL string,
	logger *slog.Logger,
) services.BillingService {
	return &billingService{
		gateway:    gateway,
		subRepo:    subRepo,
		pmRepo:     pmRepo,
		invRepo:    invRepo,
		orderRepo:  orderRepo,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// Plans returns the static upgrade catalog
func (s *billingService) Plans() []models.Plan {
	return billing.Plans
}

// CreateCheckout opens a hosted checkout session for a plan
func (s *billingService) CreateCheckout(ctx context.Context, userID, email string, req *services.CheckoutRequest) (*services.CheckoutResult, error) {
	if err := validation.Validate(req.PlanID, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: plan_id: %v", domain.ErrValidation, err)
	}

	plan, ok := billing.PlanByID(req.PlanID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown plan %q", domain.ErrValidation, req.PlanID)
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, &billing.CheckoutParams{
		UserID:        userID,
		CustomerEmail: email,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		PriceID:       plan.StripePriceID,
		Interval:      plan.Interval,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout session created", "user_id", userID, "plan", plan.ID, "session", sess.ID)
	return &services.CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// GetSubscription returns the user's subscription mirror
func (s *billingService) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	return s.subRepo.GetByUserID(ctx, userID)
}

// ListPaymentMethods returns the user's stored cards
func (s *billingService) ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	return s.pmRepo.List(ctx, userID)
}

// ListInvoices returns the user's invoices
func (s *billingService) ListInvoices(ctx context.Context, userID string) ([]models.Invoice, error) {
	return s.invRepo.List(ctx, userID)
}

// HandleWebhook verifies and applies one Stripe event. Deliveries are
// at-least-once, so every write below is an idempotent upsert.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	s.logger.Info("stripe event received", "type", event.Type, "id", event.ID)

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		return s.handleSubscriptionChange(ctx, event)
	case "invoice.payment_succeeded":
		return s.handleInvoicePaid(ctx, event)
	case "payment_method.attached":
		return s.handlePaymentMethodAttached(ctx, event)
	default:
		// Acknowledge everything else so Stripe stops retrying.
		s.logger.Debug("ignoring stripe event", "type", event.Type)
		return nil
	}
}

func (s *billingService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	userID := sess.ClientReferenceID
	if userID == "" {
		s.logger.Warn("checkout session without client_reference_id", "session", sess.ID)
		return nil
	}

	planName := sess.Metadata["plan_name"]
	if planName == "" {
		planName = "Subscription"
	}
	interval := sess.Metadata["interval"]
	var billingCycle *string
	if interval != "" {
		billingCycle = &interval
	}

	order := &models.Order{
		UserID:       userID,
		ProductName:  planName,
		Amount:       sess.AmountTotal,
		Currency:     string(sess.Currency),
		Status:       "active",
		BillingCycle: billingCycle,
		CreatedAt:    time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return err
	}

	s.logger.Info("order recorded", "user_id", userID, "product", planName)
	return nil
}

func (s *billingService) handleSubscriptionChange(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	userID := sub.Metadata["user_id"]
	if userID == "" {
		s.logger.Warn("subscription event without user_id metadata", "subscription", sub.ID)
		return nil
	}

	var customerID string
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	now := time.Now()
	mirror := &models.Subscription{
		UserID:               userID,
		StripeCustomerID:     customerID,
		StripeSubscriptionID: sub.ID,
		PlanID:               sub.Metadata["plan_id"],
		PlanName:             sub.Metadata["plan_name"],
		Status:               string(sub.Status),
		CurrentPeriodStart:   time.Unix(sub.CurrentPeriodStart, 0),
		CurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.subRepo.Upsert(ctx, mirror); err != nil {
		return err
	}

	s.logger.Info("subscription mirrored", "user_id", userID, "status", mirror.Status)
	return nil
}

func (s *billingService) handleInvoicePaid(ctx context.Context, event stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}

	userID := s.resolveInvoiceUser(ctx, &inv)
	if userID == "" {
		s.logger.Warn("could not resolve invoice to a user", "invoice", inv.ID)
		return nil
	}

	record := &models.Invoice{
		UserID:          userID,
		StripeInvoiceID: inv.ID,
		AmountPaid:      inv.AmountPaid,
		Currency:        string(inv.Currency),
		Status:          string(inv.Status),
		InvoicePDF:      inv.InvoicePDF,
		CreatedAt:       time.Now(),
	}
	return s.invRepo.Upsert(ctx, record)
}

func (s *billingService) resolveInvoiceUser(ctx context.Context, inv *stripe.Invoice) string {
	if inv.SubscriptionDetails != nil {
		if userID := inv.SubscriptionDetails.Metadata["user_id"]; userID != "" {
			return userID
		}
	}
	if inv.Customer != nil {
		sub, err := s.subRepo.GetByCustomerID(ctx, inv.Customer.ID)
		if err == nil {
			return sub.UserID
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("subscription lookup by customer failed", "customer", inv.Customer.ID, "error", err)
		}
	}
	return ""
}

func (s *billingService) handlePaymentMethodAttached(ctx context.Context, event stripe.Event) error {
	var pm stripe.PaymentMethod
	if err := json.Unmarshal(event.Data.Raw, &pm); err != nil {
		return fmt.Errorf("decode payment method: %w", err)
	}

	if pm.Customer == nil {
		return nil
	}

	sub, err := s.subRepo.GetByCustomerID(ctx, pm.Customer.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The subscription event may not have landed yet; Stripe will
			// not retry attached events, but the card shows up on the next
			// invoice anyway.
			s.logger.Warn("payment method for unknown customer", "customer", pm.Customer.ID)
			return nil
		}
		return err
	}

	record := &models.PaymentMethod{
		UserID:                sub.UserID,
		StripePaymentMethodID: pm.ID,
		Type:                  string(pm.Type),
		CreatedAt:             time.Now(),
	}
	if pm.Card != nil {
		record.Last4 = pm.Card.Last4
		record.Brand = string(pm.Card.Brand)
		record.ExpMonth = int(pm.Card.ExpMonth)
		record.ExpYear = int(pm.Card.ExpYear)
	}

	return s.pmRepo.Upsert(ctx, record)
}
