package billing

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusActive     Status = "active"
	StatusCanceled   Status = "canceled"
)

// ParseStatus folds any stored or gateway-reported value into the closed set.
// Values that do not mean "paid and usable" or "ended" collapse to incomplete.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "trialing":
		return StatusActive
	case "canceled", "cancelled", "incomplete_expired":
		return StatusCanceled
	default:
		return StatusIncomplete
	}
}

func (s Status) IsActive() bool { return s == StatusActive }

func (s Status) Value() (driver.Value, error) {
	if s == "" {
		return string(StatusIncomplete), nil
	}
	return string(s), nil
}

func (s *Status) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = StatusIncomplete
	case string:
		*s = ParseStatus(v)
	case []byte:
		*s = ParseStatus(string(v))
	default:
		return fmt.Errorf("billing: cannot scan %T into Status", src)
	}
	return nil
}

// SyntheticSubscriptionPrefix marks ledger-only subscriptions that have no
// counterpart at the payment gateway.
const SyntheticSubscriptionPrefix = "sub_synthetic_"

// SyntheticPeriod is the period length assumed for synthetic subscriptions.
const SyntheticPeriod = 30 * 24 * time.Hour

// SubscriptionRecord is the ledger row, one per user.
type SubscriptionRecord struct {
	ID                   uint       `gorm:"primaryKey"`
	UserID               string     `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_subscriptions_user_id"`
	StripeCustomerID     *string    `gorm:"column:stripe_customer_id"`
	StripeSubscriptionID *string    `gorm:"column:stripe_subscription_id;index:idx_subscriptions_stripe_subscription_id"`
	Status               Status     `gorm:"column:status;type:varchar(20);not null;default:'incomplete'"`
	CancelAtPeriodEnd    bool       `gorm:"column:cancel_at_period_end;not null;default:false"`
	CurrentPeriodEnd     *time.Time `gorm:"column:current_period_end"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SubscriptionRecord) TableName() string { return "subscriptions" }

func (r *SubscriptionRecord) CustomerID() string {
	if r == nil || r.StripeCustomerID == nil {
		return ""
	}
	return strings.TrimSpace(*r.StripeCustomerID)
}

func (r *SubscriptionRecord) SubscriptionID() string {
	if r == nil || r.StripeSubscriptionID == nil {
		return ""
	}
	return strings.TrimSpace(*r.StripeSubscriptionID)
}

// IsSynthetic reports whether the record's subscription lives only in the ledger.
func (r *SubscriptionRecord) IsSynthetic() bool {
	return strings.HasPrefix(r.SubscriptionID(), SyntheticSubscriptionPrefix)
}

// RecordChanges is a partial update of a ledger row. Nil fields are left alone.
type RecordChanges struct {
	StripeSubscriptionID *string
	Status               *Status
	CancelAtPeriodEnd    *bool
	CurrentPeriodEnd     *time.Time
}
