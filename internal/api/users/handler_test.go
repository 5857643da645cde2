package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapi "barbershop-billing/internal/api/billing"
	"barbershop-billing/internal/domain/billing"
	"barbershop-billing/internal/domain/plans"
	"barbershop-billing/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotService struct {
	billingapi.Service

	record  *billing.SubscriptionRecord
	recErr  error
	plan    *plans.Plan
	planErr error
}

func (s *snapshotService) Subscription(context.Context, users.Subscriber) (*billing.SubscriptionRecord, error) {
	return s.record, s.recErr
}

func (s *snapshotService) Plan(context.Context) (*plans.Plan, error) {
	if s.planErr != nil {
		return nil, s.planErr
	}
	return s.plan, nil
}

func serveMe(t *testing.T, svc billingapi.Service, logs *bytes.Buffer) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(svc, zerolog.New(logs))
	h.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		billingapi.SetSubscriber(c, users.Subscriber{UserID: "user-1", Email: "owner@shop.test", Role: users.RoleOwner})
	}, h.GetCurrentUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestGetCurrentUser(t *testing.T) {
	subID := "sub_1"
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	svc := &snapshotService{
		record: &billing.SubscriptionRecord{
			UserID:               "user-1",
			StripeSubscriptionID: &subID,
			Status:               billing.StatusActive,
			CancelAtPeriodEnd:    true,
			CurrentPeriodEnd:     &end,
		},
		plan: &plans.Plan{PriceID: "price_1", Name: "Shop", Currency: "eur", UnitAmount: 29, Interval: "month"},
	}

	code, body := serveMe(t, svc, &bytes.Buffer{})
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "owner@shop.test", body["user"].(map[string]any)["email"])
	bill := body["billing"].(map[string]any)
	assert.Equal(t, "price_1", bill["plan"].(map[string]any)["stripe_price_id"])
	assert.Equal(t, true, bill["subscription"].(map[string]any)["cancel_at_period_end"])

	acc := body["access"].(map[string]any)
	assert.Equal(t, "canceling", acc["billing"])
	assert.Equal(t, "full", acc["state"])
}

func TestGetCurrentUserSurvivesPlanOutage(t *testing.T) {
	var logs bytes.Buffer
	svc := &snapshotService{planErr: billing.GatewayError(errors.New("stripe unreachable"))}

	code, body := serveMe(t, svc, &logs)
	require.Equal(t, http.StatusOK, code)

	bill := body["billing"].(map[string]any)
	assert.Nil(t, bill["plan"])
	assert.Nil(t, bill["subscription"])
	assert.Contains(t, logs.String(), "plan lookup failed")
}

func TestGetCurrentUserLedgerFailure(t *testing.T) {
	svc := &snapshotService{recErr: billing.ReconciliationError(errors.New("db down"))}

	code, body := serveMe(t, svc, &bytes.Buffer{})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "reconciliation_error", body["kind"])
}
