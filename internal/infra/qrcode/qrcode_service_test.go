package qrcode

import (
	"bytes"
	"testing"

	"sokoni/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(&config.Config{
				QRCode: &config.QRCodeConfig{Size: tt.size, ErrorCorrectionLevel: tt.errorCorrectionLevel},
			})
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateQRCode(t *testing.T) {
	service := NewQRCodeService(&config.Config{
		QRCode: &config.QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M"},
	})

	qrBytes, err := service.GenerateQRCode("https://checkout.paystack.com/abc123")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// PNG signature
	assert.True(t, bytes.HasPrefix(qrBytes, []byte{0x89, 'P', 'N', 'G'}))
}

func TestQRCodeService_GenerateQRCode_EmptyContent(t *testing.T) {
	service := NewQRCodeService(&config.Config{})

	_, err := service.GenerateQRCode("")
	assert.Error(t, err)
}

func TestQRCodeService_Defaults(t *testing.T) {
	// Nil QRCode config falls back to sane defaults.
	service := NewQRCodeService(&config.Config{})

	qrBytes, err := service.GenerateQRCode("ref-001")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}
