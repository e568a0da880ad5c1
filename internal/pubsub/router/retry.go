package router

import (
	"context"
	"errors"
	"net"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
)

// shouldRetry reports whether a failed message is worth another attempt.
// Domain rejections never change on redelivery.
func shouldRetry(logger *logger.Logger, err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}

	if ierr.IsTerminal(err) {
		logger.Debugw("not retrying terminal error", "error", err)
		return false
	}

	return true
}
