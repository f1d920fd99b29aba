package service

// QRCodeService abstracts QR code generation.
type QRCodeService interface {
	// GenerateQRCode renders the content as a PNG image.
	GenerateQRCode(content string) ([]byte, error)
}
