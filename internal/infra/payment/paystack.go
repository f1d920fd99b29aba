// Package payment implements the PaymentGateway domain service against the
// Paystack REST API.
package payment

import (
	"context"
	"log/slog"
	"net/http"

	"sokoni/config"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/service"
	"sokoni/internal/errors"

	"github.com/guonaihong/gout"
)

const defaultBaseURL = "https://api.paystack.co"

type paystackGateway struct {
	baseURL   string
	secretKey string
	currency  string
	logger    *slog.Logger
}

// NewPaystackGateway is the constructor for the Paystack payment gateway client.
func NewPaystackGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	if cfg.Paystack == nil || cfg.Paystack.SecretKey == "" {
		return nil, errors.New("paystack secret key must be provided")
	}

	baseURL := cfg.Paystack.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	currency := cfg.Paystack.Currency
	if currency == "" {
		currency = "KES"
	}

	return &paystackGateway{
		baseURL:   baseURL,
		secretKey: cfg.Paystack.SecretKey,
		currency:  currency,
		logger:    logger,
	}, nil
}

// initializeResponse mirrors Paystack's transaction initialize envelope.
type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// verifyResponse mirrors Paystack's transaction verify envelope.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
		Channel   string `json:"channel"`
		PaidAt    string `json:"paid_at"`
	} `json:"data"`
}

// Initialize starts a transaction and returns the hosted authorization URL.
// Amounts are already in minor currency units on the wire.
func (g *paystackGateway) Initialize(ctx context.Context, req *service.PaymentRequest) (*service.PaymentAuthorization, error) {
	currency := req.Currency
	if currency == "" {
		currency = g.currency
	}

	body := gout.H{
		"email":    req.Email,
		"amount":   req.Amount,
		"currency": currency,
	}
	if req.Reference != "" {
		body["reference"] = req.Reference
	}
	if req.CallbackURL != "" {
		body["callback_url"] = req.CallbackURL
	}

	var resp initializeResponse
	var code int
	err := gout.POST(g.baseURL+"/transaction/initialize").
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + g.secretKey}).
		SetJSON(body).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return nil, domainerrors.ErrPaymentFailed.WrapMessage(err.Error())
	}

	if code != http.StatusOK || !resp.Status {
		g.logger.WarnContext(ctx, "paystack initialize rejected",
			slog.Int("httpCode", code),
			slog.String("message", resp.Message),
		)

		return nil, domainerrors.ErrPaymentFailed.WrapMessage(resp.Message)
	}

	return &service.PaymentAuthorization{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

// Verify checks the final state of a transaction by its reference.
func (g *paystackGateway) Verify(ctx context.Context, reference string) (*service.PaymentVerification, error) {
	var resp verifyResponse
	var code int
	err := gout.GET(g.baseURL+"/transaction/verify/"+reference).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + g.secretKey}).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return nil, domainerrors.ErrPaymentFailed.WrapMessage(err.Error())
	}

	if code != http.StatusOK || !resp.Status {
		g.logger.WarnContext(ctx, "paystack verify rejected",
			slog.Int("httpCode", code),
			slog.String("reference", reference),
			slog.String("message", resp.Message),
		)

		return nil, domainerrors.ErrPaymentFailed.WrapMessage(resp.Message)
	}

	return &service.PaymentVerification{
		Reference: resp.Data.Reference,
		Status:    resp.Data.Status,
		Amount:    resp.Data.Amount,
		Currency:  resp.Data.Currency,
		PaidAt:    resp.Data.PaidAt,
		Channel:   resp.Data.Channel,
	}, nil
}
