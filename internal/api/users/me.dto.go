package users

import (
	billingapi "barbershop-billing/internal/api/billing"
)

type MeResponse struct {
	User    UserDTO              `json:"user"`
	Billing BillingDTO           `json:"billing"`
	Access  billingapi.AccessDTO `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan         *PlanDTO                    `json:"plan"`
	Subscription *billingapi.SubscriptionDTO `json:"subscription"`
}

type PlanDTO struct {
	Name          string  `json:"name"`
	Interval      string  `json:"interval"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	StripePriceID string  `json:"stripe_price_id"`
}
