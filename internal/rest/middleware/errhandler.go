package middleware

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached by a handler using the
// standard error envelope
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		details := ierr.ReportableDetails(err)
		if len(details) == 0 {
			details = nil
		}

		c.JSON(ierr.HTTPStatusFromErr(err), ierr.ErrorResponse{
			Success:   false,
			RequestID: types.GetRequestID(c.Request.Context()),
			Error: ierr.ErrorDetail{
				Code:    ierr.CodeFromErr(err),
				Display: ierr.DisplayMessage(err),
				Details: details,
			},
		})
	}
}
