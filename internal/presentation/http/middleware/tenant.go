package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/repository"
	infraRepo "github.com/washpoint/washpoint-api/internal/infrastructure/repository"
	"github.com/washpoint/washpoint-api/internal/presentation/http/dto/response"
)

// TenantSlugHeader lets API clients pick a tenant without relying on subdomains
const TenantSlugHeader = "X-Tenant-Slug"

// extractTenantSlug resolves the tenant slug from the X-Tenant-Slug header or
// the host's subdomain, e.g. "acme.washpoint.app" -> "acme".
func extractTenantSlug(c *gin.Context) (string, error) {
	if slug := c.GetHeader(TenantSlugHeader); slug != "" {
		return slug, nil
	}

	host := c.Request.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("no tenant slug")
	}
	return parts[0], nil
}

// TenantMiddleware resolves the tenant, checks the authenticated user's
// membership, and scopes the request context so every repository query is
// filtered to that tenant.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug, err := extractTenantSlug(c)
		if err != nil {
			// Tenant-less requests reach only routes that do not require a
			// tenant; scoped repositories fail safe to zero rows.
			c.Set("tenant_id", uuid.Nil)
			c.Next()
			return
		}

		tenant, err := tenantRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil || tenant == nil {
			response.NotFound(c, "Tenant not found")
			c.Abort()
			return
		}

		if userIDVal, exists := c.Get("user_id"); exists {
			if userID, ok := userIDVal.(uuid.UUID); ok && userID != uuid.Nil {
				isMember, _ := tenantRepo.IsMember(c.Request.Context(), tenant.ID, userID)
				if !isMember {
					response.Forbidden(c, "Access denied to this tenant")
					c.Abort()
					return
				}
			}
		}

		c.Set("tenant_id", tenant.ID)
		c.Set("tenant", tenant)

		// Services and repositories read the tenant from the request context.
		ctx := infraRepo.WithTenant(c.Request.Context(), tenant.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireTenant ensures a valid tenant context exists
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, exists := c.Get("tenant_id")
		if !exists {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		id, ok := tenantID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.BadRequest(c, "Invalid tenant context")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
