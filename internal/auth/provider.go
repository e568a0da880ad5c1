package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

// Claims is the trusted identity carried by a verified bearer token
type Claims struct {
	UserID   string
	Role     types.UserRole
	BranchID string
}

// Provider verifies bearer tokens issued by the bank's identity service.
// Tokens are never issued to end users by this service.
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type jwtProvider struct {
	secret []byte
	issuer string
}

func NewProvider(cfg *config.Configuration) Provider {
	return &jwtProvider{
		secret: []byte(cfg.Auth.Secret),
		issuer: cfg.Auth.Issuer,
	}
}

func (p *jwtProvider) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid token").
			Mark(ierr.ErrUnauthenticated)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthenticated)
	}

	if p.issuer != "" && !claims.VerifyIssuer(p.issuer, true) {
		return nil, ierr.NewError("unexpected token issuer").
			WithHint("Invalid token issuer").
			Mark(ierr.ErrUnauthenticated)
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, ierr.NewError("token missing subject").
			WithHint("Token missing user ID").
			Mark(ierr.ErrUnauthenticated)
	}

	role := types.UserRole(fmt.Sprint(claims["role"]))
	if role.Validate() != nil {
		return nil, ierr.NewError("token carries an unknown role").
			WithHint("Token carries an unknown role").
			Mark(ierr.ErrUnauthenticated)
	}

	branchID, _ := claims["branch_id"].(string)

	return &Claims{UserID: userID, Role: role, BranchID: branchID}, nil
}

// SignToken produces an HS256 token for the given identity. Used by tooling
// and tests that stand in for the identity service.
func SignToken(cfg *config.Configuration, c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  c.UserID,
		"role": string(c.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	if c.BranchID != "" {
		claims["branch_id"] = c.BranchID
	}
	if cfg.Auth.Issuer != "" {
		claims["iss"] = cfg.Auth.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Auth.Secret))
}
