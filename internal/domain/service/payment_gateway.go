package service

import "context"

// PaymentRequest describes a payment to initialize. Amount is in minor
// currency units (integer, x100 of the major unit) as the gateway requires.
type PaymentRequest struct {
	Email       string
	Amount      int64
	Currency    string
	Reference   string
	CallbackURL string
}

// PaymentAuthorization is the gateway's handle for a pending payment.
type PaymentAuthorization struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// PaymentVerification is the gateway's settlement report for a reference.
type PaymentVerification struct {
	Reference string
	Status    string // e.g. "success", "failed", "abandoned"
	Amount    int64  // minor units
	Currency  string
	PaidAt    string
	Channel   string
}

// PaymentGateway abstracts the third-party payment provider.
type PaymentGateway interface {
	// Initialize registers a pending payment and returns the authorization handle.
	Initialize(ctx context.Context, req *PaymentRequest) (*PaymentAuthorization, error)

	// Verify fetches the settlement state for a payment reference.
	Verify(ctx context.Context, reference string) (*PaymentVerification, error)
}
