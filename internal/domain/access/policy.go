package access

import (
	"time"

	"barbershop-billing/internal/domain/billing"
)

type Policy struct {
	State        AccessState
	Billing      billing.State
	Actions      []billing.Action
	Capabilities []string
}

func ComputePolicy(now time.Time, rec *billing.SubscriptionRecord) Policy {
	state := ComputeEffectiveAccessState(now, rec)
	bs := billing.StateOf(rec)

	return Policy{
		State:        state,
		Billing:      bs,
		Actions:      billing.AllowedActions(bs),
		Capabilities: CapabilitiesFor(state),
	}
}
