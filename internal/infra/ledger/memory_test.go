package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"barbershop-billing/internal/domain/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedgerMatchesConflictRules(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	_, err := l.FindByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, billing.ErrNoRecord)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.UpsertCustomer(ctx, "user-1", fmt.Sprintf("cus_%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, l.Len())

	first, err := l.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	again, err := l.UpsertCustomer(ctx, "user-1", "cus_late")
	require.NoError(t, err)
	assert.Equal(t, first.CustomerID(), again.CustomerID())
	assert.Equal(t, billing.StatusIncomplete, again.Status)
}

func TestMemoryLedgerReturnsCopies(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()
	_, err := l.UpsertCustomer(ctx, "user-1", "cus_1")
	require.NoError(t, err)

	rec, err := l.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	rec.CancelAtPeriodEnd = true

	stored, err := l.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, stored.CancelAtPeriodEnd)
}
