package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"sokoni/config"
	domainerrors "sokoni/internal/domain/errors"
	"sokoni/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(t *testing.T, handler http.Handler) service.PaymentGateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Paystack: &config.PaystackConfig{
			BaseURL:   server.URL,
			SecretKey: "sk_test_secret",
			Currency:  "KES",
		},
	}

	gateway, err := NewPaystackGateway(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return gateway
}

func TestNewPaystackGateway_RequiresSecret(t *testing.T) {
	_, err := NewPaystackGateway(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestPaystackGateway_Initialize(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	gateway := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref-001"
			}
		}`))
	}))

	auth, err := gateway.Initialize(context.Background(), &service.PaymentRequest{
		Email:     "amina@example.com",
		Amount:    45_000,
		Reference: "ref-001",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	// Amount goes over the wire in minor units, currency falls back to config.
	assert.Equal(t, float64(45_000), gotBody["amount"])
	assert.Equal(t, "KES", gotBody["currency"])

	assert.Equal(t, "https://checkout.paystack.com/abc123", auth.AuthorizationURL)
	assert.Equal(t, "abc123", auth.AccessCode)
	assert.Equal(t, "ref-001", auth.Reference)
}

func TestPaystackGateway_InitializeRejected(t *testing.T) {
	gateway := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
	}))

	_, err := gateway.Initialize(context.Background(), &service.PaymentRequest{
		Email:  "amina@example.com",
		Amount: 0,
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPaymentFailed.ErrorCode(), appErr.ErrorCode())
}

func TestPaystackGateway_Verify(t *testing.T) {
	gateway := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ref-001", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"reference": "ref-001",
				"status": "success",
				"amount": 45000,
				"currency": "KES",
				"channel": "card",
				"paid_at": "2026-08-01T10:15:00.000Z"
			}
		}`))
	}))

	verification, err := gateway.Verify(context.Background(), "ref-001")
	require.NoError(t, err)

	assert.Equal(t, "ref-001", verification.Reference)
	assert.Equal(t, "success", verification.Status)
	assert.Equal(t, int64(45_000), verification.Amount)
	assert.Equal(t, "card", verification.Channel)
	assert.NotEmpty(t, verification.PaidAt)
}

func TestPaystackGateway_VerifyFailed(t *testing.T) {
	gateway := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))

	_, err := gateway.Verify(context.Background(), "missing-ref")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPaymentFailed.ErrorCode(), appErr.ErrorCode())
}
