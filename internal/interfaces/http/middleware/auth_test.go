// internal/interfaces/http/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/pkg/auth"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Pitstop Performance API"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-thats-long-enough-for-hs256",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(AuthMiddleware(cfg))
	protected.GET("", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		username, _ := GetUsernameFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})

	admin := r.Group("/admin")
	admin.Use(AuthMiddleware(cfg))
	admin.Use(AdminMiddleware())
	admin.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := setupRouter(testConfig())

	w := doRequest(r, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := setupRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	r := setupRouter(testConfig())

	w := doRequest(r, "/protected", "not-a-valid-token")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token, err := auth.NewJWTManager(cfg).GenerateRefreshToken(1, "speedracer")
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)

	token, err := auth.NewJWTManager(cfg).GenerateAccessToken(42, "speedracer", false)
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "speedracer")
}

func TestAdminMiddleware(t *testing.T) {
	cfg := testConfig()
	r := setupRouter(cfg)
	manager := auth.NewJWTManager(cfg)

	userToken, err := manager.GenerateAccessToken(1, "regular", false)
	require.NoError(t, err)
	w := doRequest(r, "/admin", userToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := manager.GenerateAccessToken(2, "boss", true)
	require.NoError(t, err)
	w = doRequest(r, "/admin", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
}
