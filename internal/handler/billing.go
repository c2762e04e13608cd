package handler

import (
	"errors"
	"io"
	"net/http"

	"ayitichat/internal/domain"
	"ayitichat/internal/domain/services"
	"ayitichat/internal/httputil"
)

// maxWebhookBytes bounds the Stripe webhook payload.
const maxWebhookBytes = 1 << 20

// BillingHandler serves plans, checkout, billing reads and the webhook.
type BillingHandler struct {
	billing services.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billing services.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// Plans handles GET /api/plans (public)
func (h *BillingHandler) Plans(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"plans": h.billing.Plans()})
}

// Checkout handles POST /api/billing/checkout
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.billing.CreateCheckout(r.Context(), userID, httputil.GetUserEmail(r), &req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Subscription handles GET /api/billing/subscription
func (h *BillingHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sub, err := h.billing.GetSubscription(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Free plan users get an explicit null, not a 404.
			httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"subscription": nil})
			return
		}
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"subscription": sub})
}

// PaymentMethods handles GET /api/billing/payment-methods
func (h *BillingHandler) PaymentMethods(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	methods, err := h.billing.ListPaymentMethods(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"payment_methods": methods})
}

// Invoices handles GET /api/billing/invoices
func (h *BillingHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	invoices, err := h.billing.ListInvoices(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"invoices": invoices})
}

// Webhook handles POST /api/billing/webhook. No bearer auth: Stripe signs
// the payload instead.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	if err := h.billing.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
