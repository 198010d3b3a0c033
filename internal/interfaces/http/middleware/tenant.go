package middleware

import (
	"net/http"
	"strings"

	"github.com/boardhub/backend/internal/infrastructure/logger"
	"github.com/boardhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// TenantIDKey is the gin context key for the tenant id
	TenantIDKey = "tenant_id"
	// TenantHeaderKey is the header carrying the tenant id
	TenantHeaderKey = "X-Tenant-ID"
	// ActorKey is the gin context key for the acting user
	ActorKey = "actor"
	// ActorHeaderKey is the header carrying the acting user's identifier.
	// The gateway authenticates it before it reaches this service.
	ActorHeaderKey = "X-User-ID"
)

// TenantConfig holds tenant middleware configuration
type TenantConfig struct {
	// SkipPaths don't require tenant context (health checks, metrics)
	SkipPaths []string
}

// DefaultTenantConfig returns the default tenant middleware configuration
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready"},
	}
}

// Tenant extracts the tenant id from the X-Tenant-ID header and stores it in
// both the gin context and the request context. Requests without a valid
// tenant are rejected.
func Tenant() gin.HandlerFunc {
	return TenantWithConfig(DefaultTenantConfig())
}

// TenantWithConfig returns tenant middleware with custom configuration
func TenantWithConfig(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		tenantID := c.GetHeader(TenantHeaderKey)
		if tenantID == "" {
			abortUnauthorized(c, "Tenant identification required")
			return
		}
		if _, err := uuid.Parse(tenantID); err != nil {
			abortUnauthorized(c, "Invalid tenant ID format")
			return
		}

		c.Set(TenantIDKey, tenantID)

		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID)

		if actor := c.GetHeader(ActorHeaderKey); actor != "" {
			c.Set(ActorKey, actor)
			ctx = logger.WithActor(ctx, actor)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTenantUUID retrieves the tenant id as a UUID from gin context
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.GetString(TenantIDKey))
}

// GetActor retrieves the acting user's identifier; "system" when the
// header was absent so audit columns never go empty
func GetActor(c *gin.Context) string {
	if actor := c.GetString(ActorKey); actor != "" {
		return actor
	}
	return "system"
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
