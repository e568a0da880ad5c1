package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cbo-rewards/loyalty/internal/auth"
	"github.com/cbo-rewards/loyalty/internal/config"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type MiddlewareSuite struct {
	suite.Suite
	cfg *config.Configuration
	log *logger.Logger
}

func TestMiddleware(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *MiddlewareSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()
	s.cfg.Auth.Enabled = true
	s.cfg.Auth.Secret = "test-secret"
	s.cfg.Auth.Issuer = "cbo-identity"
	s.log = logger.NewNoopLogger()
}

// newEngine mounts the middleware chain in front of a handler that echoes
// the resolved identity
func (s *MiddlewareSuite) newEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware, ErrorHandler())
	handlers := append([]gin.HandlerFunc{AuthenticateMiddleware(s.cfg, auth.NewProvider(s.cfg), s.log)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id": types.GetUserID(ctx),
			"role":    types.GetRole(ctx),
		})
	})
	r.GET("/customers/:id", handlers...)
	return r
}

func (s *MiddlewareSuite) token(userID string, role types.UserRole) string {
	tok, err := auth.SignToken(s.cfg, auth.Claims{UserID: userID, Role: role}, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *MiddlewareSuite) do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (s *MiddlewareSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *MiddlewareSuite) errorCode(w *httptest.ResponseRecorder) string {
	body := s.decode(w)
	s.Equal(false, body["success"])
	detail, ok := body["error"].(map[string]any)
	s.Require().True(ok)
	return detail["code"].(string)
}

func (s *MiddlewareSuite) TestValidToken() {
	w := s.do(s.newEngine(), "/customers/usr_1", s.token("usr_1", types.UserRoleCustomer))
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal("usr_1", body["user_id"])
	s.Equal(string(types.UserRoleCustomer), body["role"])
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *MiddlewareSuite) TestRejectedTokens() {
	other := *s.cfg
	other.Auth.Secret = "someone-else"
	forged, err := auth.SignToken(&other, auth.Claims{UserID: "usr_1", Role: types.UserRoleAdmin}, time.Hour)
	s.Require().NoError(err)

	expired, err := auth.SignToken(s.cfg, auth.Claims{UserID: "usr_1", Role: types.UserRoleAdmin}, -time.Minute)
	s.Require().NoError(err)

	badRole, err := auth.SignToken(s.cfg, auth.Claims{UserID: "usr_1", Role: "root"}, time.Hour)
	s.Require().NoError(err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "missing header", token: ""},
		{name: "wrong secret", token: forged},
		{name: "expired", token: expired},
		{name: "unknown role", token: badRole},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := s.do(s.newEngine(), "/customers/usr_1", tc.token)
			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal(ierr.ErrCodeUnauthenticated, s.errorCode(w))
		})
	}
}

func (s *MiddlewareSuite) TestAuthDisabledRunsAsSystemAdmin() {
	s.cfg.Auth.Enabled = false

	w := s.do(s.newEngine(), "/customers/usr_1", "")
	s.Equal(http.StatusOK, w.Code)

	body := s.decode(w)
	s.Equal(types.DefaultUserID, body["user_id"])
	s.Equal(string(types.UserRoleAdmin), body["role"])
}

func (s *MiddlewareSuite) TestRequireRoles() {
	perm := NewPermissionMiddleware(s.log)
	r := s.newEngine(perm.RequireRoles(types.UserRoleAdmin))

	w := s.do(r, "/customers/usr_1", s.token("usr_1", types.UserRoleCustomer))
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(ierr.ErrCodePermissionDenied, s.errorCode(w))

	w = s.do(r, "/customers/usr_1", s.token("usr_admin", types.UserRoleAdmin))
	s.Equal(http.StatusOK, w.Code)
}

func (s *MiddlewareSuite) TestRequireSelfOrStaff() {
	perm := NewPermissionMiddleware(s.log)
	r := s.newEngine(perm.RequireSelfOrStaff("id"))

	s.Equal(http.StatusOK, s.do(r, "/customers/usr_1", s.token("usr_1", types.UserRoleCustomer)).Code)
	s.Equal(http.StatusForbidden, s.do(r, "/customers/usr_2", s.token("usr_1", types.UserRoleCustomer)).Code)
	s.Equal(http.StatusOK, s.do(r, "/customers/usr_2", s.token("usr_mgr", types.UserRoleBranchManager)).Code)
}

func (s *MiddlewareSuite) TestRateLimit() {
	s.cfg.RateLimit.Enabled = true
	s.cfg.RateLimit.RPS = 0.001
	s.cfg.RateLimit.Burst = 2
	r := s.newEngine(RateLimit(s.cfg))

	alice := s.token("usr_alice", types.UserRoleCustomer)
	s.Equal(http.StatusOK, s.do(r, "/customers/usr_alice", alice).Code)
	s.Equal(http.StatusOK, s.do(r, "/customers/usr_alice", alice).Code)

	w := s.do(r, "/customers/usr_alice", alice)
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal(ierr.ErrCodeRateLimited, s.errorCode(w))

	// buckets are per caller
	bob := s.token("usr_bob", types.UserRoleCustomer)
	s.Equal(http.StatusOK, s.do(r, "/customers/usr_bob", bob).Code)
}

func (s *MiddlewareSuite) TestErrorHandlerRendersDetails() {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/redeem", func(c *gin.Context) {
		c.Error(ierr.NewError("insufficient points").
			WithHint("Not enough points to redeem this reward").
			WithReportableDetails(map[string]any{"shortfall": 150}).
			Mark(ierr.ErrInsufficientPoints))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/redeem", nil))
	s.Equal(http.StatusBadRequest, w.Code)

	body := s.decode(w)
	detail := body["error"].(map[string]any)
	s.Equal(ierr.ErrCodeInsufficientPoints, detail["code"])
	s.Equal("Not enough points to redeem this reward", detail["message"])
	s.EqualValues(150, detail["details"].(map[string]any)["shortfall"])
}

func (s *MiddlewareSuite) TestRequestIDIsPropagated() {
	r := gin.New()
	r.Use(RequestIDMiddleware)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, types.GetRequestID(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(types.HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	s.Equal("req-42", w.Body.String())
	s.Equal("req-42", w.Header().Get(types.HeaderRequestID))
}

func (s *MiddlewareSuite) TestCORS() {
	s.cfg.Server.AllowedOrigins = []string{"https://branch.cbo.example"}
	r := gin.New()
	r.Use(CORS(s.cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	preflight.Header.Set("Origin", "https://branch.cbo.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, preflight)
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("https://branch.cbo.example", w.Header().Get("Access-Control-Allow-Origin"))
	s.Contains(w.Header().Get("Access-Control-Allow-Headers"), types.HeaderIdempotency)

	other := httptest.NewRequest(http.MethodGet, "/ping", nil)
	other.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, other)
	s.Equal(http.StatusOK, w.Code)
	s.Empty(w.Header().Get("Access-Control-Allow-Origin"))
}
