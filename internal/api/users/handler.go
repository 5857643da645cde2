package users

import (
	"net/http"
	"time"

	billingapi "barbershop-billing/internal/api/billing"
	"barbershop-billing/internal/domain/access"
	"barbershop-billing/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc billingapi.Service
	log zerolog.Logger
	now func() time.Time
}

func NewHandler(svc billingapi.Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log, now: time.Now}
}

// GetCurrentUser returns the caller with its billing snapshot. The plan is
// decorative here, so a gateway outage leaves it null instead of failing.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	sub, ok := billingapi.CurrentSubscriber(c)
	if !ok {
		billingapi.Fail(c, billing.AuthError("not authenticated"))
		return
	}

	ctx := c.Request.Context()

	rec, err := h.svc.Subscription(ctx, sub)
	if err != nil {
		billingapi.Fail(c, err)
		return
	}

	plan, err := h.svc.Plan(ctx)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", sub.UserID).Msg("plan lookup failed")
		plan = nil
	}

	policy := access.ComputePolicy(h.now(), rec)

	c.JSON(http.StatusOK, MeResponse{
		User: BuildUserDTO(sub),
		Billing: BillingDTO{
			Plan:         BuildPlanDTO(plan),
			Subscription: billingapi.BuildSubscriptionDTO(rec),
		},
		Access: billingapi.BuildAccessDTO(policy),
	})
}
