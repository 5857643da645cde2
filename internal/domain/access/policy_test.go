package access

import (
	"testing"
	"time"

	"barbershop-billing/internal/domain/billing"

	"github.com/stretchr/testify/assert"
)

func TestComputePolicy(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(72 * time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name    string
		rec     *billing.SubscriptionRecord
		state   AccessState
		billing billing.State
		actions []billing.Action
	}{
		{"no subscription", nil, AccessLocked, billing.StateNone, []billing.Action{billing.ActionCheckout}},
		{"incomplete", &billing.SubscriptionRecord{Status: billing.StatusIncomplete}, AccessLocked, billing.StateIncomplete, []billing.Action{billing.ActionCheckout}},
		{"active", &billing.SubscriptionRecord{Status: billing.StatusActive}, AccessFull, billing.StateActive, []billing.Action{billing.ActionCancel}},
		{"canceling in period", &billing.SubscriptionRecord{Status: billing.StatusActive, CancelAtPeriodEnd: true, CurrentPeriodEnd: &later}, AccessFull, billing.StateCanceling, []billing.Action{billing.ActionReactivate}},
		{"canceling past period", &billing.SubscriptionRecord{Status: billing.StatusActive, CancelAtPeriodEnd: true, CurrentPeriodEnd: &earlier}, AccessGrace, billing.StateCanceling, []billing.Action{billing.ActionReactivate}},
		{"canceled paid through", &billing.SubscriptionRecord{Status: billing.StatusCanceled, CurrentPeriodEnd: &later}, AccessGrace, billing.StateCanceled, []billing.Action{billing.ActionCheckout}},
		{"canceled expired", &billing.SubscriptionRecord{Status: billing.StatusCanceled, CurrentPeriodEnd: &earlier}, AccessLocked, billing.StateCanceled, []billing.Action{billing.ActionCheckout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePolicy(now, tt.rec)
			assert.Equal(t, tt.state, p.State)
			assert.Equal(t, tt.billing, p.Billing)
			assert.Equal(t, tt.actions, p.Actions)
			assert.Equal(t, CapabilitiesFor(tt.state), p.Capabilities)
		})
	}
}

func TestCapabilitiesLockedIsEmptyNotNil(t *testing.T) {
	caps := CapabilitiesFor(AccessLocked)
	assert.NotNil(t, caps)
	assert.Empty(t, caps)
}
