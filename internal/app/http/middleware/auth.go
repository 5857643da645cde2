package middleware

import (
	"net/http"

	billingapi "barbershop-billing/internal/api/billing"
	"barbershop-billing/internal/domain/users"
	"barbershop-billing/internal/infra/identity"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller once per request and stores it on the
// gin context for the handlers.
func AuthMiddleware(gate *identity.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, err := gate.Resolve(c.Request)
		if err != nil {
			billingapi.Fail(c, err)
			return
		}

		billingapi.SetSubscriber(c, sub)
		c.Next()
	}
}

func RequireRole(roles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := billingapi.CurrentSubscriber(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Role not found", "kind": "auth_error"})
			return
		}

		for _, r := range roles {
			if sub.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied", "kind": "forbidden"})
	}
}
