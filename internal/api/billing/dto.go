package billing

import "time"

type SubscriptionResponse struct {
	Subscription *SubscriptionDTO `json:"subscription"`
	Access       AccessDTO        `json:"access"`
}

type SubscriptionDTO struct {
	Status               string     `json:"status"`
	CancelAtPeriodEnd    bool       `json:"cancel_at_period_end"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
	Synthetic            bool       `json:"synthetic,omitempty"`
}

type AccessDTO struct {
	State        string   `json:"state"`   // full|grace|locked
	Billing      string   `json:"billing"` // none|incomplete|active|canceling|canceled
	Actions      []string `json:"actions"`
	Capabilities []string `json:"capabilities"`
}

type PeriodResponse struct {
	PeriodEnd string `json:"periodEnd"`
}

type ConfirmRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}
