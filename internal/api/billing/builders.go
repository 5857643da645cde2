package billing

import (
	"time"

	"barbershop-billing/internal/domain/access"
	"barbershop-billing/internal/domain/billing"
)

func BuildSubscriptionDTO(rec *billing.SubscriptionRecord) *SubscriptionDTO {
	if rec == nil {
		return nil
	}
	var subID *string
	if id := rec.SubscriptionID(); id != "" {
		subID = &id
	}
	return &SubscriptionDTO{
		Status:               string(rec.Status),
		CancelAtPeriodEnd:    rec.CancelAtPeriodEnd,
		CurrentPeriodEnd:     rec.CurrentPeriodEnd,
		StripeSubscriptionID: subID,
		Synthetic:            rec.IsSynthetic(),
	}
}

func BuildAccessDTO(policy access.Policy) AccessDTO {
	actions := make([]string, 0, len(policy.Actions))
	for _, a := range policy.Actions {
		actions = append(actions, string(a))
	}
	return AccessDTO{
		State:        string(policy.State),
		Billing:      string(policy.Billing),
		Actions:      actions,
		Capabilities: policy.Capabilities,
	}
}

func BuildPeriodResponse(periodEnd time.Time) PeriodResponse {
	return PeriodResponse{PeriodEnd: periodEnd.UTC().Format(time.RFC3339)}
}
