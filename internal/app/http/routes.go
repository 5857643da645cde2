package routes

import (
	billingapi "barbershop-billing/internal/api/billing"
	usersapi "barbershop-billing/internal/api/users"
	"barbershop-billing/internal/app/http/middleware"
	"barbershop-billing/internal/domain/users"
	"barbershop-billing/internal/infra/identity"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, billing *billingapi.Handler, me *usersapi.Handler, gate *identity.Gate) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public
	r.GET("/billing/plan", billing.GetPlan)

	// Any signed-in member of a shop
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(gate))
	auth.GET("/me", me.GetCurrentUser)

	// Shop owners only
	owner := r.Group("/billing")
	owner.Use(middleware.AuthMiddleware(gate), middleware.RequireRole(users.RoleOwner))
	owner.GET("/subscription", billing.GetSubscription)
	owner.POST("/checkout", billing.CreateCheckoutSession)
	owner.POST("/checkout/confirm", billing.ConfirmCheckout)
	owner.POST("/cancel", billing.CancelSubscription)
	owner.POST("/reactivate", billing.ReactivateSubscription)
}
