package auth

import (
	"testing"
	"time"

	"sokoni/config"
	"sokoni/internal/domain/entity"
	"sokoni/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL: time.Minute,
		SessionTTL:     time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testTokenService(t)
	accountID := uuid.New()

	token, err := svc.GenerateAccessToken(accountID, entity.RoleSeller)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, entity.RoleSeller, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt, 10*time.Second)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := testTokenService(t)

	token, err := svc.GenerateAccessToken(uuid.New(), entity.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token + "x")
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := testTokenService(t)

	other := &config.Config{}
	other.SecretKey.Access = "different-secret"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	token, err := otherSvc.GenerateAccessToken(uuid.New(), entity.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_SessionTokens(t *testing.T) {
	svc := testTokenService(t)

	first := svc.NewSessionToken()
	second := svc.NewSessionToken()
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	// Hashing is deterministic and never echoes the token back.
	hash := svc.HashToken(first)
	assert.Equal(t, hash, svc.HashToken(first))
	assert.NotEqual(t, hash, svc.HashToken(second))
	assert.NotContains(t, hash, first)
	assert.Len(t, hash, 64)

	assert.Equal(t, time.Hour, svc.SessionTTL())
}
