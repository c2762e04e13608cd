package models

import "time"

// Subscription mirrors the Stripe subscription state for a user. Rows are
// upserted by the webhook handler, never written by the client directly.
type Subscription struct {
	ID                   string    `json:"id" db:"id"`
	UserID               string    `json:"user_id" db:"user_id"`
	StripeCustomerID     string    `json:"stripe_customer_id" db:"stripe_customer_id"`
	StripeSubscriptionID string    `json:"stripe_subscription_id" db:"stripe_subscription_id"`
	PlanID               string    `json:"plan_id" db:"plan_id"`
	PlanName             string    `json:"plan_name" db:"plan_name"`
	Status               string    `json:"status" db:"status"`
	CurrentPeriodStart   time.Time `json:"current_period_start" db:"current_period_start"`
	CurrentPeriodEnd     time.Time `json:"current_period_end" db:"current_period_end"`
	CancelAtPeriodEnd    bool      `json:"cancel_at_period_end" db:"cancel_at_period_end"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// PaymentMethod is a stored card summary (never the full PAN).
type PaymentMethod struct {
	ID                    string    `json:"id" db:"id"`
	UserID                string    `json:"user_id" db:"user_id"`
	StripePaymentMethodID string    `json:"stripe_payment_method_id" db:"stripe_payment_method_id"`
	Type                  string    `json:"type" db:"type"`
	Last4                 string    `json:"last4" db:"last4"`
	Brand                 string    `json:"brand" db:"brand"`
	ExpMonth              int       `json:"exp_month" db:"exp_month"`
	ExpYear               int       `json:"exp_year" db:"exp_year"`
	IsDefault             bool      `json:"is_default" db:"is_default"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}

// Invoice is a paid-invoice record surfaced on the billing screen.
type Invoice struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	StripeInvoiceID string    `json:"stripe_invoice_id" db:"stripe_invoice_id"`
	AmountPaid      int64     `json:"amount_paid" db:"amount_paid"`
	Currency        string    `json:"currency" db:"currency"`
	Status          string    `json:"status" db:"status"`
	InvoicePDF      string    `json:"invoice_pdf" db:"invoice_pdf"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Plan is a static catalog entry; plans are code, not rows.
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"` // USD per interval
	Interval      string   `json:"interval"`
	Features      []string `json:"features"`
	StripePriceID string   `json:"stripe_price_id"`
}
