package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v81"

	"ayitichat/internal/billing"
	"ayitichat/internal/domain"
	"ayitichat/internal/domain/models"
	"ayitichat/internal/domain/services"
)

type billingFixture struct {
	gateway   *fakeGateway
	subRepo   *fakeSubRepo
	pmRepo    *fakePMRepo
	invRepo   *fakeInvRepo
	orderRepo *fakeOrderRepo
	svc       services.BillingService
}

func newBillingFixture() *billingFixture {
	f := &billingFixture{
		gateway:   &fakeGateway{},
		subRepo:   newFakeSubRepo(),
		pmRepo:    newFakePMRepo(),
		invRepo:   newFakeInvRepo(),
		orderRepo: &fakeOrderRepo{},
	}
	f.svc = NewBillingService(f.gateway, f.subRepo, f.pmRepo, f.invRepo, f.orderRepo,
		"https://app.example.com/success", "https://app.example.com/cancel", testLogger)
	return f
}

func stripeEvent(t *testing.T, eventType string, object interface{}) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	if err != nil {
		t.Fatalf("marshal event object: %v", err)
	}
	return stripe.Event{
		ID:   "evt_test",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestPlansCatalog(t *testing.T) {
	f := newBillingFixture()

	plans := f.svc.Plans()
	if len(plans) != 3 {
		t.Fatalf("plans = %d, want 3", len(plans))
	}

	byID := map[string]models.Plan{}
	for _, p := range plans {
		byID[p.ID] = p
	}
	if byID["plus"].Price != 20 {
		t.Errorf("plus price = %d, want 20", byID["plus"].Price)
	}
	if byID["pro"].Price != 200 {
		t.Errorf("pro price = %d, want 200", byID["pro"].Price)
	}
	if byID["team"].Price != 30 {
		t.Errorf("team price = %d, want 30", byID["team"].Price)
	}
}

func TestCreateCheckout(t *testing.T) {
	f := newBillingFixture()
	f.gateway.session = &billing.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}

	result, err := f.svc.CreateCheckout(context.Background(), "user-1", "moun@example.com", &services.CheckoutRequest{PlanID: "plus"})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if result.URL != "https://checkout.stripe.com/cs_123" {
		t.Errorf("url = %q", result.URL)
	}

	params := f.gateway.lastParams
	if params.UserID != "user-1" {
		t.Errorf("user_id = %q, must ride along for webhook resolution", params.UserID)
	}
	if params.CustomerEmail != "moun@example.com" {
		t.Errorf("email = %q", params.CustomerEmail)
	}
	if params.PlanID != "plus" || params.PriceID == "" {
		t.Errorf("plan = %q price = %q", params.PlanID, params.PriceID)
	}
}

func TestCreateCheckoutUnknownPlan(t *testing.T) {
	f := newBillingFixture()

	_, err := f.svc.CreateCheckout(context.Background(), "user-1", "moun@example.com", &services.CheckoutRequest{PlanID: "diamond"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
	if f.gateway.lastParams != nil {
		t.Error("gateway called for an unknown plan")
	}
}

func TestWebhookBadSignature(t *testing.T) {
	f := newBillingFixture()
	f.gateway.eventErr = errors.New("signature mismatch")

	err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "bad-sig")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestWebhookCheckoutCompletedRecordsOrder(t *testing.T) {
	f := newBillingFixture()
	f.gateway.event = stripeEvent(t, "checkout.session.completed", map[string]interface{}{
		"id":                  "cs_123",
		"client_reference_id": "user-1",
		"amount_total":        2000,
		"currency":            "usd",
		"metadata": map[string]string{
			"plan_name": "Plus",
			"interval":  "monthly",
		},
	})

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	if len(f.orderRepo.orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(f.orderRepo.orders))
	}
	order := f.orderRepo.orders[0]
	if order.UserID != "user-1" {
		t.Errorf("user_id = %q", order.UserID)
	}
	if order.ProductName != "Plus" || order.Amount != 2000 {
		t.Errorf("order = %+v", order)
	}
}

func TestWebhookCheckoutWithoutReferenceIsAcked(t *testing.T) {
	f := newBillingFixture()
	f.gateway.event = stripeEvent(t, "checkout.session.completed", map[string]interface{}{
		"id": "cs_anonymous",
	})

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v, want nil so Stripe stops retrying", err)
	}
	if len(f.orderRepo.orders) != 0 {
		t.Errorf("orders = %d, want 0", len(f.orderRepo.orders))
	}
}

func TestWebhookSubscriptionChangeMirrorsRow(t *testing.T) {
	f := newBillingFixture()
	f.gateway.event = stripeEvent(t, "customer.subscription.updated", map[string]interface{}{
		"id":       "sub_123",
		"customer": map[string]interface{}{"id": "cus_123"},
		"status":   "active",
		"metadata": map[string]string{
			"user_id":   "user-1",
			"plan_id":   "plus",
			"plan_name": "Plus",
		},
		"cancel_at_period_end": true,
	})

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	mirror, ok := f.subRepo.subs["sub_123"]
	if !ok {
		t.Fatal("subscription mirror not written")
	}
	if mirror.UserID != "user-1" || mirror.StripeCustomerID != "cus_123" {
		t.Errorf("mirror = %+v", mirror)
	}
	if mirror.Status != "active" || !mirror.CancelAtPeriodEnd {
		t.Errorf("mirror status = %q cancel = %v", mirror.Status, mirror.CancelAtPeriodEnd)
	}
}

func TestWebhookSubscriptionReplayIsIdempotent(t *testing.T) {
	f := newBillingFixture()
	f.gateway.event = stripeEvent(t, "customer.subscription.created", map[string]interface{}{
		"id":       "sub_123",
		"status":   "active",
		"metadata": map[string]string{"user_id": "user-1"},
	})

	for i := 0; i < 2; i++ {
		if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
			t.Fatalf("HandleWebhook (delivery %d): %v", i+1, err)
		}
	}
	if len(f.subRepo.subs) != 1 {
		t.Errorf("mirrors = %d, want 1 after replay", len(f.subRepo.subs))
	}
}

func TestWebhookInvoicePaidResolvesViaCustomer(t *testing.T) {
	f := newBillingFixture()
	f.subRepo.Upsert(context.Background(), &models.Subscription{
		UserID:               "user-1",
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_123",
	})
	f.gateway.event = stripeEvent(t, "invoice.payment_succeeded", map[string]interface{}{
		"id":          "in_123",
		"customer":    map[string]interface{}{"id": "cus_123"},
		"amount_paid": 2000,
		"currency":    "usd",
		"status":      "paid",
	})

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	inv, ok := f.invRepo.invoices["in_123"]
	if !ok {
		t.Fatal("invoice not written")
	}
	if inv.UserID != "user-1" || inv.AmountPaid != 2000 {
		t.Errorf("invoice = %+v", inv)
	}
}

func TestWebhookPaymentMethodAttached(t *testing.T) {
	f := newBillingFixture()
	f.subRepo.Upsert(context.Background(), &models.Subscription{
		UserID:               "user-1",
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_123",
	})
	f.gateway.event = stripeEvent(t, "payment_method.attached", map[string]interface{}{
		"id":       "pm_123",
		"type":     "card",
		"customer": map[string]interface{}{"id": "cus_123"},
		"card": map[string]interface{}{
			"last4":     "4242",
			"brand":     "visa",
			"exp_month": 12,
			"exp_year":  2030,
		},
	})

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}

	pm, ok := f.pmRepo.methods["pm_123"]
	if !ok {
		t.Fatal("payment method not written")
	}
	if pm.UserID != "user-1" || pm.Last4 != "4242" || pm.Brand != "visa" {
		t.Errorf("payment method = %+v", pm)
	}
}

func TestWebhookPaymentMethodUnknownCustomerIsAcked(t *testing.T) {
	f := newBillingFixture()
	f.gateway.event = stripeEvent(t, "payment_method.attached", map[string]interface{}{
		"id":       "pm_stranger",
		"type":     "card",
		"customer": map[string]interface{}{"id": "cus_unknown"},
	})

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Fatalf("HandleWebhook: %v, want nil for an unknown customer", err)
	}
	if len(f.pmRepo.methods) != 0 {
		t.Errorf("methods = %d, want 0", len(f.pmRepo.methods))
	}
}

func TestWebhookUnhandledEventIsAcked(t *testing.T) {
	f := newBillingFixture()
	f.gateway.event = stripe.Event{ID: "evt_x", Type: "customer.created", Data: &stripe.EventData{Raw: []byte("{}")}}

	if err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"); err != nil {
		t.Errorf("HandleWebhook: %v, unhandled events must be acknowledged", err)
	}
}
