package middleware

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request once it completes
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		fields := []interface{}{
			"request_id", types.GetRequestID(ctx),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID := types.GetUserID(ctx); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		switch {
		case c.Writer.Status() >= 500:
			if len(c.Errors) > 0 {
				fields = append(fields, "error", c.Errors.Last().Err)
			}
			log.Errorw("request failed", fields...)
		case c.Writer.Status() >= 400:
			log.Infow("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}
