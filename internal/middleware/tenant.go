package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantGuard rejects requests without a tenant in context. It must run
// after AuthMiddleware.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, exists := c.Get(ContextKeyTenantID)
		if !exists {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		c.Next()
	}
}
