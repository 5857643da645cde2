package billing

import (
	"context"
	"net/http"
	"time"

	"barbershop-billing/internal/domain/access"
	"barbershop-billing/internal/domain/billing"
	"barbershop-billing/internal/domain/plans"
	"barbershop-billing/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Service is the part of the reconciler the HTTP layer drives.
type Service interface {
	InitiateCheckout(ctx context.Context, sub users.Subscriber) (*billing.CheckoutResult, error)
	ConfirmCheckout(ctx context.Context, sub users.Subscriber, sessionID string) (*billing.SubscriptionRecord, error)
	Cancel(ctx context.Context, sub users.Subscriber) (*billing.PeriodResult, error)
	Reactivate(ctx context.Context, sub users.Subscriber) (*billing.PeriodResult, error)
	Subscription(ctx context.Context, sub users.Subscriber) (*billing.SubscriptionRecord, error)
	Plan(ctx context.Context) (*plans.Plan, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) subscriber(c *gin.Context) (users.Subscriber, bool) {
	sub, ok := CurrentSubscriber(c)
	if !ok {
		Fail(c, billing.AuthError("not authenticated"))
	}
	return sub, ok
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	sub, ok := h.subscriber(c)
	if !ok {
		return
	}

	res, err := h.svc.InitiateCheckout(c.Request.Context(), sub)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": res.SessionID, "redirectUrl": res.RedirectURL})
}

func (h *Handler) ConfirmCheckout(c *gin.Context) {
	sub, ok := h.subscriber(c)
	if !ok {
		return
	}

	var body ConfirmRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid session_id"})
		return
	}

	rec, err := h.svc.ConfirmCheckout(c.Request.Context(), sub, body.SessionID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, h.subscriptionResponse(rec))
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	sub, ok := h.subscriber(c)
	if !ok {
		return
	}

	res, err := h.svc.Cancel(c.Request.Context(), sub)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, BuildPeriodResponse(res.PeriodEnd))
}

func (h *Handler) ReactivateSubscription(c *gin.Context) {
	sub, ok := h.subscriber(c)
	if !ok {
		return
	}

	res, err := h.svc.Reactivate(c.Request.Context(), sub)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, BuildPeriodResponse(res.PeriodEnd))
}

func (h *Handler) GetSubscription(c *gin.Context) {
	sub, ok := h.subscriber(c)
	if !ok {
		return
	}

	rec, err := h.svc.Subscription(c.Request.Context(), sub)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, h.subscriptionResponse(rec))
}

func (h *Handler) GetPlan(c *gin.Context) {
	p, err := h.svc.Plan(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) subscriptionResponse(rec *billing.SubscriptionRecord) SubscriptionResponse {
	policy := access.ComputePolicy(h.now(), rec)
	return SubscriptionResponse{
		Subscription: BuildSubscriptionDTO(rec),
		Access:       BuildAccessDTO(policy),
	}
}
