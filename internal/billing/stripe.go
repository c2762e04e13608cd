package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// CheckoutParams describes one hosted checkout session.
type CheckoutParams struct {
	UserID        string
	CustomerEmail string
	PlanID        string
	PlanName      string
	PriceID       string
	Interval      string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the subset of the Stripe session the API returns.
type CheckoutSession struct {
	ID  string
	URL string
}

// Gateway abstracts the Stripe API so services can be tested without
// network access.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error)
	// ParseEvent verifies the webhook signature and decodes the event.
	ParseEvent(payload []byte, signature string) (stripe.Event, error)
}

// StripeGateway is the real implementation backed by stripe-go.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway creates a gateway with its own API client (no global key).
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession opens a subscription checkout. The user id rides
// along as client_reference_id and subscription metadata so webhook events
// can be tied back to a local user.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, params *CheckoutParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:     stripe.String(params.CustomerEmail),
		ClientReferenceID: stripe.String(params.UserID),
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id":   params.UserID,
				"plan_id":   params.PlanID,
				"plan_name": params.PlanName,
				"interval":  params.Interval,
			},
		},
		Metadata: map[string]string{
			"user_id":   params.UserID,
			"plan_id":   params.PlanID,
			"plan_name": params.PlanName,
			"interval":  params.Interval,
		},
	}
	sessionParams.Context = ctx

	sess, err := g.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// ParseEvent verifies the Stripe-Signature header against the endpoint secret.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("verify webhook signature: %w", err)
	}
	return event, nil
}
