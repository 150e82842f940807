package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client's retry key
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds client supplied keys
const MaxIdempotencyKeyLength = 255

// IdempotencyMiddlewareConfig holds configuration for the Idempotency-Key middleware
type IdempotencyMiddlewareConfig struct {
	Store  shared.IdempotencyStore
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency rejects a mutating request whose Idempotency-Key was already
// used by the same tenant on the same path. Requests without the header pass.
// A failed request releases its key so the client can retry with it.
func Idempotency(cfg IdempotencyMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = shared.DefaultIdempotencyConfig().TTL
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" || !isMutating(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			abortWithError(c, dto.ErrCodeBadRequest, "Idempotency-Key is too long")
			return
		}

		storeKey := idempotencyStoreKey(c, key)
		ctx := c.Request.Context()

		claimed, err := cfg.Store.Claim(ctx, storeKey, cfg.TTL)
		if err != nil {
			cfg.Logger.Error("Idempotency store unavailable, processing request without replay protection",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			cfg.Logger.Info("Duplicate request rejected",
				zap.String("idempotency_key", key),
				zap.String("path", c.Request.URL.Path))
			abortWithError(c, dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := cfg.Store.Release(context.WithoutCancel(ctx), storeKey); err != nil {
				cfg.Logger.Warn("Failed to release idempotency key",
					zap.String("idempotency_key", key),
					zap.Error(err))
			}
		}
	}
}

func idempotencyStoreKey(c *gin.Context, key string) string {
	return strings.Join([]string{GetTenantID(c).String(), c.Request.Method, c.Request.URL.Path, key}, ":")
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
