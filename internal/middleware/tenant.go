package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"folharh/internal/domain"
)

// ContextKeyTenantID is the Gin context key holding the request tenant.
const ContextKeyTenantID = "tenant_id"

// TenantHeader is the header carrying the tenant ID. Authentication happens
// upstream; by the time a request reaches this service the header is trusted.
const TenantHeader = "X-Tenant-ID"

// Tenant returns middleware that parses the X-Tenant-ID header into the
// request context. Requests without a valid tenant UUID are rejected.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TenantHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "tenant context required"},
			})
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid tenant id"},
			})
			return
		}
		c.Set(ContextKeyTenantID, tenantID)
		c.Next()
	}
}

// GetTenantID extracts the tenant ID from the Gin context.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}
