package middleware

import (
	"github.com/NehaS05/NYRApi-sub000/internal/infrastructure/logger"
	"github.com/NehaS05/NYRApi-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tenant and acting user context keys
const (
	TenantIDKey   = "tenant_id" // string form, read by the request logger
	TenantUUIDKey = "tenant_uuid"
	UserUUIDKey   = "user_uuid"
	TenantHeader  = "X-Tenant-ID"
	UserHeader    = "X-User-ID"
)

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// DefaultTenantID is used when neither a token nor the header names a tenant.
	// uuid.Nil makes the tenant mandatory.
	DefaultTenantID uuid.UUID
	Logger          *zap.Logger
}

// Tenant resolves the tenant and the acting user of the request.
// Tenant order: JWT claims, X-Tenant-ID header, configured default.
// User order: JWT claims, X-User-ID header.
func Tenant(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		tenantID, source, err := resolveTenant(c, cfg.DefaultTenantID)
		if err != nil {
			abortWithError(c, dto.ErrCodeInvalidTenant, "Invalid tenant ID format")
			return
		}
		if tenantID == uuid.Nil {
			abortWithError(c, dto.ErrCodeInvalidTenant, "Tenant ID is required")
			return
		}

		userID, err := resolveUser(c)
		if err != nil {
			abortWithError(c, dto.ErrCodeBadRequest, "Invalid user ID format")
			return
		}

		c.Set(TenantIDKey, tenantID.String())
		c.Set(TenantUUIDKey, tenantID)
		if userID != uuid.Nil {
			c.Set(UserUUIDKey, userID)
		}

		ctx := logger.WithTenantID(c.Request.Context(), tenantID.String())
		if userID != uuid.Nil {
			ctx = logger.WithUserID(ctx, userID.String())
		}
		c.Request = c.Request.WithContext(ctx)

		cfg.Logger.Debug("Tenant resolved",
			zap.String("tenant_id", tenantID.String()),
			zap.String("source", source),
		)
		c.Next()
	}
}

func resolveTenant(c *gin.Context, fallback uuid.UUID) (uuid.UUID, string, error) {
	if claimed := c.GetString(JWTTenantIDKey); claimed != "" {
		id, err := uuid.Parse(claimed)
		return id, "jwt", err
	}
	if header := c.GetHeader(TenantHeader); header != "" {
		id, err := uuid.Parse(header)
		return id, "header", err
	}
	return fallback, "default", nil
}

func resolveUser(c *gin.Context) (uuid.UUID, error) {
	if claimed := c.GetString(JWTUserIDKey); claimed != "" {
		return uuid.Parse(claimed)
	}
	if header := c.GetHeader(UserHeader); header != "" {
		return uuid.Parse(header)
	}
	return uuid.Nil, nil
}

// GetTenantID returns the tenant resolved by Tenant, or uuid.Nil
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(TenantUUIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUserID returns the acting user resolved by Tenant, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserUUIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
