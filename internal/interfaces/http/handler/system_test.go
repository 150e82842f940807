package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveSystem(h *SystemHandler, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSystemHandler_Health(t *testing.T) {
	failing := DependencyCheck{Name: "database", Check: func(context.Context) error { return errors.New("down") }}
	h := NewSystemHandler("fieldstock", "1.2.3", failing)

	w := serveSystem(h, "/health")
	assert.Equal(t, http.StatusOK, w.Code, "liveness ignores dependencies")

	var resp struct {
		Success bool           `json:"success"`
		Data    HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "fieldstock", resp.Data.Name)
	assert.Equal(t, "1.2.3", resp.Data.Version)
	assert.NotEmpty(t, resp.Data.GoVersion)
}

func TestSystemHandler_Ready(t *testing.T) {
	ok := DependencyCheck{Name: "database", Check: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all dependencies up", func(t *testing.T) {
		w := serveSystem(NewSystemHandler("fieldstock", "dev", ok), "/ready")
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data ReadyResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Ready)
		assert.Equal(t, "ok", resp.Data.Dependencies["database"])
	})

	t.Run("one dependency down", func(t *testing.T) {
		w := serveSystem(NewSystemHandler("fieldstock", "dev", ok, down), "/ready")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp struct {
			Success bool          `json:"success"`
			Data    ReadyResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.False(t, resp.Data.Ready)
		assert.Equal(t, "ok", resp.Data.Dependencies["database"])
		assert.Equal(t, "unavailable", resp.Data.Dependencies["redis"])
	})
}
