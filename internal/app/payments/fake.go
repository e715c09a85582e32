package payments

import "fmt"

// FakeProvider is an in-memory Provider for tests and local development.
type FakeProvider struct {
	Intents []FakeIntent
	Refunds []FakeRefund
	// Err, when set, is returned by every call.
	Err error

	nextID int
}

type FakeIntent struct {
	ID          string
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

type FakeRefund struct {
	PaymentIntentID string
	AmountCents     *int64
}

func (f *FakeProvider) CreatePaymentIntent(amountCents int64, currency string, metadata map[string]string) (string, string, error) {
	if f.Err != nil {
		return "", "", f.Err
	}
	f.nextID++
	id := fmt.Sprintf("pi_fake_%d", f.nextID)
	f.Intents = append(f.Intents, FakeIntent{ID: id, AmountCents: amountCents, Currency: currency, Metadata: metadata})
	return id, id + "_secret", nil
}

func (f *FakeProvider) GetPaymentStatus(paymentIntentID string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return "succeeded", nil
}

func (f *FakeProvider) RefundPayment(paymentIntentID string, amountCents *int64) error {
	if f.Err != nil {
		return f.Err
	}
	f.Refunds = append(f.Refunds, FakeRefund{PaymentIntentID: paymentIntentID, AmountCents: amountCents})
	return nil
}
