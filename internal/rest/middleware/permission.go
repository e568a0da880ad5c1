package middleware

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// PermissionMiddleware guards routes by the caller role set by
// AuthenticateMiddleware
type PermissionMiddleware struct {
	logger *logger.Logger
}

func NewPermissionMiddleware(logger *logger.Logger) *PermissionMiddleware {
	return &PermissionMiddleware{logger: logger}
}

// RequireRoles lets the request through only for the listed roles
func (pm *PermissionMiddleware) RequireRoles(roles ...types.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		role := types.GetRole(ctx)
		if lo.Contains(roles, role) {
			c.Next()
			return
		}

		pm.logger.Infow("permission denied",
			"user_id", types.GetUserID(ctx),
			"role", role,
			"path", c.Request.URL.Path,
		)
		abortWithError(c, ierr.NewError("role not allowed").
			WithHint("You do not have permission to perform this action").
			WithReportableDetails(map[string]any{"role": role}).
			Mark(ierr.ErrPermissionDenied))
	}
}

// RequireStaff is RequireRoles for admins and branch managers
func (pm *PermissionMiddleware) RequireStaff() gin.HandlerFunc {
	return pm.RequireRoles(types.UserRoleAdmin, types.UserRoleBranchManager)
}

// RequireSelfOrStaff allows customers to reach only their own resources,
// identified by the named path parameter. Staff pass unconditionally.
func (pm *PermissionMiddleware) RequireSelfOrStaff(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if types.IsStaff(ctx) || types.GetUserID(ctx) == c.Param(param) {
			c.Next()
			return
		}

		pm.logger.Infow("customer reached for another customer",
			"user_id", types.GetUserID(ctx),
			"target", c.Param(param),
			"path", c.Request.URL.Path,
		)
		abortWithError(c, ierr.NewError("customer mismatch").
			WithHint("You can only access your own account").
			Mark(ierr.ErrPermissionDenied))
	}
}
