package middleware

import (
	"net/http"
	"strings"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	types.HeaderAuthorization,
	types.HeaderRequestID,
	types.HeaderIdempotency,
}, ", ")

// CORS lets the branch dashboard and the mobile web client call the API.
// server.allowed_origins limits which origins are echoed back.
func CORS(cfg *config.Configuration) gin.HandlerFunc {
	origins := cfg.Server.AllowedOrigins
	allowAny := len(origins) == 0 || lo.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAny:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
		c.Header("Access-Control-Expose-Headers", types.HeaderRequestID)
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
