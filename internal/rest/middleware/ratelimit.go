package middleware

import (
	"sync"

	"github.com/cbo-rewards/loyalty/internal/config"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit throttles each caller with a token bucket. Callers are keyed by
// user ID, falling back to the client IP for unauthenticated traffic.
func RateLimit(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var limiters sync.Map
	limiterFor := func(key string) *rate.Limiter {
		if l, ok := limiters.Load(key); ok {
			return l.(*rate.Limiter)
		}
		l, _ := limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
		return l.(*rate.Limiter)
	}

	return func(c *gin.Context) {
		key := types.GetUserID(c.Request.Context())
		if key == "" {
			key = c.ClientIP()
		}

		if !limiterFor(key).Allow() {
			abortWithError(c, ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, please retry shortly").
				Mark(ierr.ErrRateLimited))
			return
		}
		c.Next()
	}
}
