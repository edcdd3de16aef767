// Package qrcode renders QR code images for designer portfolios.
package qrcode

import (
	"fmt"
	"strings"

	"marketplace/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePortfolioQR renders a PNG QR code pointing at a designer's portfolio URL.
func (s *qrcodeService) GeneratePortfolioQR(portfolioURL string) ([]byte, error) {
	if strings.TrimSpace(portfolioURL) == "" {
		return nil, fmt.Errorf("portfolio URL is empty")
	}

	qrCode, err := qrcode.New(portfolioURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
