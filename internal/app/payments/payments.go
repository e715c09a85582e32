// Package payments wraps the external payment processor behind a small
// provider interface so the tuition flows can be tested without network
// calls.
package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/refund"
)

// Provider is the payment-processor boundary used by the tuition payment and
// refund flows.
type Provider interface {
	CreatePaymentIntent(amountCents int64, currency string, metadata map[string]string) (id, clientSecret string, err error)
	GetPaymentStatus(paymentIntentID string) (string, error)
	RefundPayment(paymentIntentID string, amountCents *int64) error
}

// StripeProvider implements Provider against Stripe. Payment Element on the
// front end collects card, Apple Pay and Google Pay details against the
// returned client secret.
type StripeProvider struct {
	apiKey string
}

func NewStripeProvider(apiKey string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{apiKey: apiKey}
}

func (s *StripeProvider) CreatePaymentIntent(amountCents int64, currency string, metadata map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		Metadata: metadata,
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

func (s *StripeProvider) GetPaymentStatus(paymentIntentID string) (string, error) {
	pi, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get payment intent: %w", err)
	}
	return string(pi.Status), nil
}

// RefundPayment refunds a payment. A nil amount refunds the full amount.
func (s *StripeProvider) RefundPayment(paymentIntentID string, amountCents *int64) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	if amountCents != nil {
		params.Amount = stripe.Int64(*amountCents)
	}

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}
	return nil
}
