package billing

import (
	"errors"
	"net/http"

	"barbershop-billing/internal/domain/billing"
	"barbershop-billing/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const subscriberKey = "subscriber"

func SetSubscriber(c *gin.Context, sub users.Subscriber) {
	c.Set(subscriberKey, sub)
	c.Set("user_id", sub.UserID)
	c.Set("email", sub.Email)
	c.Set("role", string(sub.Role))
}

func CurrentSubscriber(c *gin.Context) (users.Subscriber, bool) {
	v, ok := c.Get(subscriberKey)
	if !ok {
		return users.Subscriber{}, false
	}
	sub, ok := v.(users.Subscriber)
	return sub, ok && sub.UserID != ""
}

func StatusFor(kind billing.Kind) int {
	switch kind {
	case billing.KindAuth:
		return http.StatusUnauthorized
	case billing.KindNotFound:
		return http.StatusNotFound
	case billing.KindIncomplete:
		return http.StatusConflict
	case billing.KindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err as {"error": message, "kind": kind} and aborts the chain.
func Fail(c *gin.Context, err error) {
	var be *billing.Error
	if !errors.As(err, &be) {
		be = billing.ReconciliationError(err)
	}
	c.AbortWithStatusJSON(StatusFor(be.Kind), gin.H{
		"error": be.Message,
		"kind":  be.Kind,
	})
}
