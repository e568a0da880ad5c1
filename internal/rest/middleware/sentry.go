package middleware

import (
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware attaches a per-request hub so panics and captured errors
// carry the request they came from
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	capture := sentrygin.New(sentrygin.Options{
		Repanic: true,
		Timeout: 2 * time.Second,
	})
	return func(c *gin.Context) {
		capture(c)
	}
}

// SentryScope tags the request hub with the authenticated caller. It must
// run after authentication.
func SentryScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			ctx := c.Request.Context()
			hub.Scope().SetTag("request_id", types.GetRequestID(ctx))
			hub.Scope().SetTag("role", string(types.GetRole(ctx)))
			hub.Scope().SetUser(sentry.User{ID: types.GetUserID(ctx)})
		}
		c.Next()
	}
}
