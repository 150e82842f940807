package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/auth"
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/config"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-at-least-32-chars"

func newTestVerifier() *auth.TokenVerifier {
	return auth.NewTokenVerifier(config.JWTConfig{Secret: testJWTSecret, Issuer: "test-issuer"})
}

func newJWTRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuth(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant": c.GetString(JWTTenantIDKey),
			"user":   c.GetString(JWTUserIDKey),
		})
	})
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func get(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(AuthHeaderKey, authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	verifier := newTestVerifier()
	tenantID, userID := uuid.New(), uuid.New()
	token, err := verifier.Issue(tenantID, userID, "driver", time.Hour)
	require.NoError(t, err)

	w := get(newJWTRouter(JWTMiddlewareConfig{Verifier: verifier, Required: true}), "/test", BearerPrefix+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenantID.String())
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestJWTAuth_Rejections(t *testing.T) {
	verifier := newTestVerifier()
	expiredToken, err := verifier.Issue(uuid.New(), uuid.New(), "driver", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		required bool
		header   string
		code     string
	}{
		{"missing token when required", true, "", dto.ErrCodeUnauthorized},
		{"not a bearer header", false, "Basic abc", dto.ErrCodeInvalidToken},
		{"empty bearer", false, BearerPrefix, dto.ErrCodeInvalidToken},
		{"garbage token even when optional", false, BearerPrefix + "garbage", dto.ErrCodeInvalidToken},
		{"expired token", true, BearerPrefix + expiredToken, dto.ErrCodeTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newJWTRouter(JWTMiddlewareConfig{Verifier: verifier, Required: tt.required}), "/test", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestJWTAuth_OptionalAllowsAnonymous(t *testing.T) {
	w := get(newJWTRouter(JWTMiddlewareConfig{Verifier: newTestVerifier()}), "/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	router := newJWTRouter(JWTMiddlewareConfig{Verifier: newTestVerifier(), Required: true, SkipPaths: []string{"/health"}})
	assert.Equal(t, http.StatusOK, get(router, "/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/test", "").Code)
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	verifier := newTestVerifier()
	token, err := verifier.Issue(uuid.New(), uuid.New(), "driver", time.Hour)
	require.NoError(t, err)
	claims, err := verifier.Verify(token)
	require.NoError(t, err)

	revocations := auth.NewInMemoryRevocationList()
	require.NoError(t, revocations.Revoke(context.Background(), claims.ID, time.Hour))

	w := get(newJWTRouter(JWTMiddlewareConfig{Verifier: verifier, Revocations: revocations, Required: true}), "/test", BearerPrefix+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeTokenRevoked)
}
