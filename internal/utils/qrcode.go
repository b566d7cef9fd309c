package utils

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const rosterQRSize = 256

// GenerateQRCodePNG membuat QR code sebagai PNG bytes
func GenerateQRCodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = rosterQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}
