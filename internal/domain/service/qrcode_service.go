package service

// QRCodeService defines the interface for rendering QR code images.
type QRCodeService interface {
	// GeneratePortfolioQR renders a PNG QR code pointing at a designer's
	// portfolio URL.
	GeneratePortfolioQR(portfolioURL string) ([]byte, error)
}
