package middleware

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// PyroscopeMiddleware tags profiles collected while serving a request with
// its route. Path parameter values are left out to keep label cardinality low.
func PyroscopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Pyroscope.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labels := pyroscope.Labels(
			"method", c.Request.Method,
			"route", c.FullPath(),
		)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(context.Context) {
			c.Next()
		})
	}
}
