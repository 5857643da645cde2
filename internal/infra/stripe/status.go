package stripe

import (
	"strings"

	"barbershop-billing/internal/domain/billing"

	stripego "github.com/stripe/stripe-go/v75"
)

// Stripe-ish normalization used ONLY for the ledger's closed status set
func NormalizeStripeStatus(s stripego.SubscriptionStatus) billing.Status {
	switch stripego.SubscriptionStatus(strings.TrimSpace(string(s))) {
	case stripego.SubscriptionStatusActive, stripego.SubscriptionStatusTrialing:
		return billing.StatusActive
	case stripego.SubscriptionStatusCanceled, stripego.SubscriptionStatusIncompleteExpired:
		return billing.StatusCanceled
	default:
		// incomplete, past_due, unpaid, paused: not usable yet
		return billing.StatusIncomplete
	}
}
