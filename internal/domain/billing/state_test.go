package billing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateOf(t *testing.T) {
	sub := "sub_1"
	tests := []struct {
		name string
		rec  *SubscriptionRecord
		want State
	}{
		{"no record", nil, StateNone},
		{"incomplete", &SubscriptionRecord{Status: StatusIncomplete}, StateIncomplete},
		{"active", &SubscriptionRecord{Status: StatusActive, StripeSubscriptionID: &sub}, StateActive},
		{"canceling", &SubscriptionRecord{Status: StatusActive, CancelAtPeriodEnd: true}, StateCanceling},
		{"canceled", &SubscriptionRecord{Status: StatusCanceled, CancelAtPeriodEnd: true}, StateCanceled},
		{"unset status", &SubscriptionRecord{}, StateIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.rec))
		})
	}
}

func TestAllowedActions(t *testing.T) {
	assert.Equal(t, []Action{ActionCheckout}, AllowedActions(StateNone))
	assert.Equal(t, []Action{ActionCheckout}, AllowedActions(StateCanceled))
	assert.Equal(t, []Action{ActionCancel}, AllowedActions(StateActive))
	assert.Equal(t, []Action{ActionReactivate}, AllowedActions(StateCanceling))
	assert.Empty(t, AllowedActions(State("bogus")))
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusActive, ParseStatus(" Active "))
	assert.Equal(t, StatusActive, ParseStatus("trialing"))
	assert.Equal(t, StatusCanceled, ParseStatus("canceled"))
	assert.Equal(t, StatusCanceled, ParseStatus("incomplete_expired"))
	assert.Equal(t, StatusIncomplete, ParseStatus("past_due"))
	assert.Equal(t, StatusIncomplete, ParseStatus(""))
}

func TestStatusScanAndValue(t *testing.T) {
	var s Status
	assert.NoError(t, s.Scan([]byte("active")))
	assert.Equal(t, StatusActive, s)
	assert.NoError(t, s.Scan(nil))
	assert.Equal(t, StatusIncomplete, s)
	assert.Error(t, s.Scan(42))

	v, err := Status("").Value()
	assert.NoError(t, err)
	assert.Equal(t, "incomplete", v)
}

func TestSyntheticDetection(t *testing.T) {
	synthetic := SyntheticSubscriptionPrefix + "abc"
	live := "sub_1Nabc"
	assert.True(t, (&SubscriptionRecord{StripeSubscriptionID: &synthetic}).IsSynthetic())
	assert.False(t, (&SubscriptionRecord{StripeSubscriptionID: &live}).IsSynthetic())
	assert.False(t, (&SubscriptionRecord{}).IsSynthetic())
}

func TestErrorMatching(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFoundError("no active subscription"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, NotFoundError("no active subscription")))
	assert.False(t, errors.Is(err, NotFoundError("something else")))
	assert.False(t, errors.Is(err, ErrGateway))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))

	cause := errors.New("dial tcp: refused")
	rerr := ReconciliationError(cause)
	assert.ErrorIs(t, rerr, cause)
	assert.Equal(t, "dial tcp: refused", rerr.Message)
}

func TestRequireSubscription(t *testing.T) {
	assert.ErrorIs(t, requireSubscription(nil), ErrNotFound)
	assert.ErrorIs(t, requireSubscription(&SubscriptionRecord{}), ErrIncomplete)
	sub := "sub_1"
	assert.NoError(t, requireSubscription(&SubscriptionRecord{StripeSubscriptionID: &sub}))
}
