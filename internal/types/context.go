package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxRole      ContextKey = "ctx_role"
	CtxJWT       ContextKey = "ctx_jwt"

	// DefaultUserID is the actor recorded for work that has no caller,
	// such as seeding and scheduled jobs
	DefaultUserID = "system"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(CtxRole).(UserRole); ok {
		return role
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetJWT(ctx context.Context) string {
	if jwt, ok := ctx.Value(CtxJWT).(string); ok {
		return jwt
	}
	return ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRole sets the caller role in the context
func SetRole(ctx context.Context, role UserRole) context.Context {
	return context.WithValue(ctx, CtxRole, role)
}

// IsStaff reports whether the caller may act on behalf of any customer
func IsStaff(ctx context.Context) bool {
	role := GetRole(ctx)
	return role == UserRoleAdmin || role == UserRoleBranchManager
}
