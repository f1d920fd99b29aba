// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"sokoni/internal/domain/service"
)

// CheckoutOutput is the handle for a started checkout: where to send the
// buyer, plus a QR rendering of that URL for in-person flows.
type CheckoutOutput struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
	QRCodePNG        []byte
	Amount           int64 // minor units actually charged
}

// CheckoutUsecase turns the current cart into a payment. It reads the cart
// total, initializes the gateway transaction and reports verification.
type CheckoutUsecase interface {
	// StartCheckout initializes a payment for the cart total of the current
	// user. Fails with ErrCartEmpty on an empty cart and ErrNotAuthenticated
	// when nobody is logged in.
	StartCheckout(ctx context.Context) (*CheckoutOutput, error)

	// VerifyPayment checks the settlement state of a reference; a successful
	// settlement clears the cart and logs a purchase activity.
	VerifyPayment(ctx context.Context, reference string) (*service.PaymentVerification, error)
}
