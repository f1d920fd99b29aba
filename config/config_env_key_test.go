package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	t.Parallel()

	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode":      "disable",
			"maxOpenConns": 10,
		},
		"paystack": map[string]any{
			"baseUrl":     "https://api.paystack.co",
			"callbackUrl": "",
		},
		"env": map[string]any{
			"serviceName": "sokoni",
			"log": map[string]any{
				"pretty": true,
			},
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{
			name:   "aligns with camelCase yaml key",
			rawKey: "POSTGRES_SSLMODE",
			want:   "postgres.sslMode",
		},
		{
			name:   "aligns multiword camelCase key",
			rawKey: "POSTGRES_MAXOPENCONNS",
			want:   "postgres.maxOpenConns",
		},
		{
			name:   "nested path",
			rawKey: "ENV_LOG_PRETTY",
			want:   "env.log.pretty",
		},
		{
			name:   "aligns url suffix",
			rawKey: "PAYSTACK_BASEURL",
			want:   "paystack.baseUrl",
		},
		{
			name:   "unknown key passes through lowered",
			rawKey: "PAYSTACK_SECRETKEY",
			want:   "paystack.secretkey",
		},
		{
			name:   "completely unknown root",
			rawKey: "SOMETHING_ELSE",
			want:   "something.else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := canonicalizeEnvKey(tt.rawKey, existing)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sslmode", normalizeToken("sslMode"))
	assert.Equal(t, "maxopenconns", normalizeToken("max_open_conns"))
	assert.Equal(t, "baseurl", normalizeToken("baseUrl"))
}
