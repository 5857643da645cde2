package access

import (
	"time"

	"barbershop-billing/internal/domain/billing"
)

// Effective dashboard access for a shop owner: full|grace|locked
func ComputeEffectiveAccessState(now time.Time, rec *billing.SubscriptionRecord) AccessState {
	switch billing.StateOf(rec) {
	case billing.StateActive:
		return AccessFull

	case billing.StateCanceling:
		// still paid for; lapses at period end
		if rec.CurrentPeriodEnd == nil || now.Before(*rec.CurrentPeriodEnd) {
			return AccessFull
		}
		return AccessGrace

	case billing.StateCanceled:
		if rec.CurrentPeriodEnd != nil && now.Before(*rec.CurrentPeriodEnd) {
			return AccessGrace
		}
		return AccessLocked

	default:
		return AccessLocked
	}
}
