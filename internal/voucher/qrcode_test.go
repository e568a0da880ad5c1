package voucher

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRCode(t *testing.T) {
	data, err := GenerateQRCode(Payload("CBO-ABC123", nil), DefaultQRSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultQRSize, img.Bounds().Dx())
	assert.Equal(t, DefaultQRSize, img.Bounds().Dy())
}

func TestGenerateQRCode_InvalidSize(t *testing.T) {
	_, err := GenerateQRCode("CBO-ABC123", 10)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestPayload(t *testing.T) {
	expires := time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "CBO-VOUCHER|CBO-ABC123|2025-07-15", Payload("CBO-ABC123", &expires))
	assert.Equal(t, "CBO-VOUCHER|CBO-ABC123", Payload("CBO-ABC123", nil))
}
