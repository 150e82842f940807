package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTenantRouter(defaultTenant uuid.UUID, withJWT bool) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	if withJWT {
		router.Use(JWTAuth(JWTMiddlewareConfig{Verifier: newTestVerifier()}))
	}
	router.Use(Tenant(TenantMiddlewareConfig{DefaultTenantID: defaultTenant}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant": GetTenantID(c).String(),
			"user":   GetUserID(c).String(),
		})
	})
	return router
}

func TestTenant_Resolution(t *testing.T) {
	defaultTenant := uuid.New()
	headerTenant := uuid.New()

	t.Run("falls back to the default tenant", func(t *testing.T) {
		w := httptest.NewRecorder()
		newTenantRouter(defaultTenant, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), defaultTenant.String())
	})

	t.Run("header beats the default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeader, headerTenant.String())
		w := httptest.NewRecorder()
		newTenantRouter(defaultTenant, false).ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), headerTenant.String())
	})

	t.Run("token beats the header", func(t *testing.T) {
		tokenTenant, tokenUser := uuid.New(), uuid.New()
		token, err := newTestVerifier().Issue(tokenTenant, tokenUser, "driver", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeader, headerTenant.String())
		req.Header.Set(UserHeader, uuid.NewString())
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		newTenantRouter(defaultTenant, true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tokenTenant.String())
		assert.Contains(t, w.Body.String(), tokenUser.String())
	})

	t.Run("user header is used without a token", func(t *testing.T) {
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(UserHeader, userID.String())
		w := httptest.NewRecorder()
		newTenantRouter(defaultTenant, false).ServeHTTP(w, req)
		assert.Contains(t, w.Body.String(), userID.String())
	})
}

func TestTenant_Rejections(t *testing.T) {
	t.Run("malformed tenant header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeader, "not-a-uuid")
		w := httptest.NewRecorder()
		newTenantRouter(uuid.New(), false).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeInvalidTenant)
	})

	t.Run("no tenant and no default", func(t *testing.T) {
		w := httptest.NewRecorder()
		newTenantRouter(uuid.Nil, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed user header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(UserHeader, "42")
		w := httptest.NewRecorder()
		newTenantRouter(uuid.New(), false).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
