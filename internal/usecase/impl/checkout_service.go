// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"sokoni/config"
	deliverycontext "sokoni/internal/delivery/context"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/service"
	"sokoni/internal/usecase"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

// paymentSucceeded is Paystack's settled transaction status.
const paymentSucceeded = "success"

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	sessionStore usecase.SessionStore
	cartStore    usecase.CartStore
	socialStore  usecase.SocialStore
	gateway      service.PaymentGateway
	qrcodes      service.QRCodeService
	node         *snowflake.Node
	callbackURL  string
	logger       *slog.Logger
}

// CheckoutServiceParams holds dependencies for the checkout service, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	SessionStore usecase.SessionStore
	CartStore    usecase.CartStore
	SocialStore  usecase.SocialStore
	Gateway      service.PaymentGateway
	QRCodes      service.QRCodeService
	Node         *snowflake.Node
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	callbackURL := ""
	if params.Config.Paystack != nil {
		callbackURL = params.Config.Paystack.CallbackURL
	}

	return &checkoutService{
		sessionStore: params.SessionStore,
		cartStore:    params.CartStore,
		socialStore:  params.SocialStore,
		gateway:      params.Gateway,
		qrcodes:      params.QRCodes,
		node:         params.Node,
		callbackURL:  callbackURL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartCheckout initializes a payment for the current cart total. Amounts are
// carried in minor currency units end to end, which is exactly what the
// gateway expects on the wire.
func (srv *checkoutService) StartCheckout(ctx context.Context) (*usecase.CheckoutOutput, error) {
	user, ok := srv.sessionStore.CurrentUser()
	if !ok {
		return nil, domainerrors.ErrNotAuthenticated
	}

	if srv.cartStore.TotalItems() == 0 {
		return nil, domainerrors.ErrCartEmpty
	}
	amount := srv.cartStore.TotalPrice()

	reference := "sok-" + srv.node.Generate().String()
	authorization, err := srv.gateway.Initialize(ctx, &service.PaymentRequest{
		Email:       user.Email,
		Amount:      amount,
		Reference:   reference,
		CallbackURL: srv.callbackURL,
	})
	if err != nil {
		return nil, err
	}

	qrPNG, err := srv.qrcodes.GenerateQRCode(authorization.AuthorizationURL)
	if err != nil {
		// The hosted URL still works without the QR rendering.
		srv.log(ctx).WarnContext(ctx, "checkout QR generation failed", slog.String("error", err.Error()))
		qrPNG = nil
	}

	srv.log(ctx).InfoContext(ctx, "checkout started",
		slog.String("reference", authorization.Reference),
		slog.Int64("amount", amount),
	)

	return &usecase.CheckoutOutput{
		AuthorizationURL: authorization.AuthorizationURL,
		AccessCode:       authorization.AccessCode,
		Reference:        authorization.Reference,
		QRCodePNG:        qrPNG,
		Amount:           amount,
	}, nil
}

// VerifyPayment checks the settlement state of a reference. A successful
// settlement clears the cart, logs a purchase activity and re-evaluates
// purchase achievements.
func (srv *checkoutService) VerifyPayment(ctx context.Context, reference string) (*service.PaymentVerification, error) {
	verification, err := srv.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	if verification.Status != paymentSucceeded {
		srv.log(ctx).InfoContext(ctx, "payment not settled",
			slog.String("reference", reference),
			slog.String("status", verification.Status),
		)

		return verification, nil
	}

	srv.cartStore.Clear()

	totalPurchases := 1
	for _, activity := range srv.socialStore.Activities() {
		if activity.Type == "purchase" {
			totalPurchases++
		}
	}
	srv.socialStore.AddActivity(usecase.ActivityInput{
		Type:     "purchase",
		TargetID: reference,
		Message:  "completed a purchase",
	})
	srv.socialStore.CheckAndUnlockAchievements("purchase", map[string]any{
		"totalPurchases": totalPurchases,
	})

	srv.log(ctx).InfoContext(ctx, "payment settled",
		slog.String("reference", reference),
		slog.Int64("amount", verification.Amount),
	)

	return verification, nil
}
