package handler

import (
	"log/slog"
	"net/http"

	"sokoni/internal/delivery/http/response"
	"sokoni/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler serves payment initialization and verification.
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// checkoutPayload is the payment initialization envelope. The QR code is a
// base64-encoded PNG of the authorization URL, when rendering succeeded.
type checkoutPayload struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Amount           int64  `json:"amount"` // minor currency units
	QRCodePNG        []byte `json:"qr_code_png,omitempty"`
}

// StartCheckout initializes a payment for the current cart total.
func (h *CheckoutHandler) StartCheckout(c echo.Context) error {
	out, err := h.checkoutUC.StartCheckout(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, checkoutPayload{
		AuthorizationURL: out.AuthorizationURL,
		AccessCode:       out.AccessCode,
		Reference:        out.Reference,
		Amount:           out.Amount,
		QRCodePNG:        out.QRCodePNG,
	}, "Checkout started")
}

// VerifyPayment fetches the settlement state for a payment reference.
func (h *CheckoutHandler) VerifyPayment(c echo.Context) error {
	reference := c.Param("reference")
	if reference == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Payment reference is missing")
	}

	verification, err := h.checkoutUC.VerifyPayment(c.Request().Context(), reference)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, verification, "")
}
