package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateShareQR renders a PNG QR code pointing at a public cookbook share link
	GenerateShareQR(shareURL string) ([]byte, error)
}
