package voucher

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// Payload returns the text a branch scanner reads off a voucher QR code
func Payload(code string, expiresAt *time.Time) string {
	if expiresAt == nil {
		return fmt.Sprintf("CBO-VOUCHER|%s", code)
	}
	return fmt.Sprintf("CBO-VOUCHER|%s|%s", code, expiresAt.UTC().Format(time.DateOnly))
}

// GenerateQRCode renders content as a square PNG of size pixels
func GenerateQRCode(content string, size int) ([]byte, error) {
	if size < MinQRSize || size > MaxQRSize {
		return nil, ierr.NewErrorf("invalid qr size %d", size).
			WithHintf("QR code size must be between %d and %d pixels", MinQRSize, MaxQRSize).
			Mark(ierr.ErrValidation)
	}

	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to encode voucher QR code").
			Mark(ierr.ErrSystem)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render voucher QR code").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}
