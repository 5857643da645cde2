package ledger

import (
	"context"
	"errors"
	"fmt"

	"barbershop-billing/internal/domain/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger stores subscription records through a privileged connection that
// is not subject to per-row access policies.
type GormLedger struct {
	db *gorm.DB
}

var _ billing.Ledger = (*GormLedger)(nil)

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) FindByUserID(ctx context.Context, userID string) (*billing.SubscriptionRecord, error) {
	var rec billing.SubscriptionRecord
	err := l.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, billing.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("find subscription for user %s: %w", userID, err)
	}
	return &rec, nil
}

func (l *GormLedger) UpsertCustomer(ctx context.Context, userID, customerID string) (*billing.SubscriptionRecord, error) {
	rec := billing.SubscriptionRecord{
		UserID:           userID,
		StripeCustomerID: &customerID,
		Status:           billing.StatusIncomplete,
	}

	// a customer id, once stored, is never replaced
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Set{
			{
				Column: clause.Column{Name: "stripe_customer_id"},
				Value:  gorm.Expr("COALESCE(subscriptions.stripe_customer_id, excluded.stripe_customer_id)"),
			},
			{
				Column: clause.Column{Name: "updated_at"},
				Value:  gorm.Expr("excluded.updated_at"),
			},
		},
	}).Create(&rec).Error
	if err != nil {
		return nil, fmt.Errorf("upsert subscription customer for user %s: %w", userID, err)
	}

	return l.FindByUserID(ctx, userID)
}

func (l *GormLedger) Update(ctx context.Context, userID string, changes billing.RecordChanges) error {
	updates := map[string]interface{}{}
	if changes.StripeSubscriptionID != nil {
		updates["stripe_subscription_id"] = *changes.StripeSubscriptionID
	}
	if changes.Status != nil {
		updates["status"] = *changes.Status
	}
	if changes.CancelAtPeriodEnd != nil {
		updates["cancel_at_period_end"] = *changes.CancelAtPeriodEnd
	}
	if changes.CurrentPeriodEnd != nil {
		updates["current_period_end"] = *changes.CurrentPeriodEnd
	}
	if len(updates) == 0 {
		return nil
	}

	res := l.db.WithContext(ctx).Model(&billing.SubscriptionRecord{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update subscription for user %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return billing.ErrNoRecord
	}
	return nil
}
