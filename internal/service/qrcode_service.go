package service

import (
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"
)

// QRCodeService renders otpauth:// enrolment links as PNG images.
type QRCodeService interface {
	OTPAuthPNG(otpAuthURL string) ([]byte, error)
	DataURI(otpAuthURL string) (template.URL, error)
}

type qrCodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) QRCodeService {
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

	if size <= 0 {
		size = 256
	}

	return &qrCodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// OTPAuthPNG encodes the enrolment link as a PNG image.
func (s *qrCodeService) OTPAuthPNG(otpAuthURL string) ([]byte, error) {
	if otpAuthURL == "" {
		return nil, fmt.Errorf("empty otpauth url")
	}

	qrCode, err := qrcode.New(otpAuthURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// DataURI returns the PNG inlined as a data: URL that templates can place in an img src.
func (s *qrCodeService) DataURI(otpAuthURL string) (template.URL, error) {
	pngBytes, err := s.OTPAuthPNG(otpAuthURL)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)), nil
}
