package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/jwtutil"
	"github.com/subhadipbhunia9332-sketch/nexora-backend/pkg/logger"
)

func init() {
	_ = logger.InitLogger(&logger.LogConfig{
		Level:       "error",
		Environment: "production",
		ServiceName: "seller-test",
	})
}

func newTestJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, JWTAuthMiddleware(newTestJWT()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareBadFormat(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, JWTAuthMiddleware(newTestJWT()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	e := echo.New()
	e.GET("/protected", okHandler, JWTAuthMiddleware(newTestJWT()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	jwt := newTestJWT()
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		claims, ok := c.Get("user").(*jwtutil.UserClaims)
		require.True(t, ok)
		assert.Equal(t, uint(42), claims.UserID)
		return c.NoContent(http.StatusOK)
	}, JWTAuthMiddleware(jwt))

	token, err := jwt.GenerateToken("seller@example.com", 42, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	jwt := newTestJWT()
	e := echo.New()
	e.GET("/admin", okHandler, JWTAuthMiddleware(jwt), AdminOnlyMiddleware())

	userToken, err := jwt.GenerateToken("user@example.com", 1, "user")
	require.NoError(t, err)
	adminToken, err := jwt.GenerateToken("admin@example.com", 2, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.GET("/", okHandler, RequestIDMiddleware())

	// Generated when absent
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Propagated when provided
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
