package ledger

import (
	"context"
	"sync"
	"time"

	"barbershop-billing/internal/domain/billing"
)

// MemoryLedger keeps records in process. It backs offline runs and tests and
// follows the same conflict rules as GormLedger.
type MemoryLedger struct {
	mu      sync.Mutex
	records map[string]billing.SubscriptionRecord
	nextID  uint
}

var _ billing.Ledger = (*MemoryLedger)(nil)

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[string]billing.SubscriptionRecord)}
}

// Put seeds or replaces a record.
func (l *MemoryLedger) Put(rec billing.SubscriptionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec.ID == 0 {
		l.nextID++
		rec.ID = l.nextID
	}
	l.records[rec.UserID] = rec
}

func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

func (l *MemoryLedger) FindByUserID(_ context.Context, userID string) (*billing.SubscriptionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[userID]
	if !ok {
		return nil, billing.ErrNoRecord
	}
	return &rec, nil
}

func (l *MemoryLedger) UpsertCustomer(_ context.Context, userID, customerID string) (*billing.SubscriptionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	rec, ok := l.records[userID]
	if !ok {
		l.nextID++
		rec = billing.SubscriptionRecord{
			ID:        l.nextID,
			UserID:    userID,
			Status:    billing.StatusIncomplete,
			CreatedAt: now,
		}
	}
	if rec.CustomerID() == "" {
		id := customerID
		rec.StripeCustomerID = &id
	}
	rec.UpdatedAt = now
	l.records[userID] = rec

	out := rec
	return &out, nil
}

func (l *MemoryLedger) Update(_ context.Context, userID string, changes billing.RecordChanges) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[userID]
	if !ok {
		return billing.ErrNoRecord
	}
	if changes.StripeSubscriptionID != nil {
		id := *changes.StripeSubscriptionID
		rec.StripeSubscriptionID = &id
	}
	if changes.Status != nil {
		rec.Status = *changes.Status
	}
	if changes.CancelAtPeriodEnd != nil {
		rec.CancelAtPeriodEnd = *changes.CancelAtPeriodEnd
	}
	if changes.CurrentPeriodEnd != nil {
		t := *changes.CurrentPeriodEnd
		rec.CurrentPeriodEnd = &t
	}
	rec.UpdatedAt = time.Now()
	l.records[userID] = rec
	return nil
}
