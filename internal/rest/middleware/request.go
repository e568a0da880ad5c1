package middleware

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

const maxRequestIDLength = 128

// RequestIDMiddleware keeps the caller's X-Request-ID when it is sane and
// mints one otherwise. The ID follows the request into logs and events.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" || len(requestID) > maxRequestIDLength {
		requestID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST)
	}

	ctx := context.WithValue(c.Request.Context(), types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)

	c.Header(types.HeaderRequestID, requestID)
	c.Next()
}
