package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"barbershop-billing/internal/domain/plans"
	"barbershop-billing/internal/domain/users"

	"github.com/rs/zerolog"
)

// Gateway is the payment processor as seen by the reconciler.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, userID string) (string, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	UpdateSubscription(ctx context.Context, subscriptionID string, cancelAtPeriodEnd bool) (*GatewaySubscription, error)
	GetPlan(ctx context.Context, priceID string) (*plans.Plan, error)
}

// Ledger persists one SubscriptionRecord per user. FindByUserID returns
// ErrNoRecord when the user has none.
type Ledger interface {
	FindByUserID(ctx context.Context, userID string) (*SubscriptionRecord, error)
	// UpsertCustomer creates the row as incomplete, or attaches the customer
	// to an existing row that has none. An already stored customer id is kept;
	// the returned record shows which one won.
	UpsertCustomer(ctx context.Context, userID, customerID string) (*SubscriptionRecord, error)
	Update(ctx context.Context, userID string, changes RecordChanges) error
}

type CheckoutRequest struct {
	UserID     string
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID           string
	URL          string
	CustomerID   string
	Subscription *GatewaySubscription
}

type GatewaySubscription struct {
	ID                string
	Status            Status
	CancelAtPeriodEnd bool
	CurrentPeriodEnd  time.Time
}

type CheckoutResult struct {
	SessionID   string
	RedirectURL string
}

type PeriodResult struct {
	PeriodEnd time.Time
}

type Config struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// Reconciler drives checkout, cancellation and reactivation, keeping the
// ledger in line with the gateway. It holds no per-subscriber state.
type Reconciler struct {
	gateway Gateway
	ledger  Ledger
	cfg     Config
	log     zerolog.Logger
	now     func() time.Time
}

func NewReconciler(gateway Gateway, ledger Ledger, cfg Config, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		gateway: gateway,
		ledger:  ledger,
		cfg:     cfg,
		log:     log.With().Str("component", "reconciler").Logger(),
		now:     time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

func (r *Reconciler) InitiateCheckout(ctx context.Context, sub users.Subscriber) (*CheckoutResult, error) {
	rec, err := r.ledger.FindByUserID(ctx, sub.UserID)
	if err != nil && !errors.Is(err, ErrNoRecord) {
		return nil, ReconciliationError(err)
	}

	customerID := rec.CustomerID()
	if customerID == "" {
		created, err := r.gateway.CreateCustomer(ctx, sub.Email, sub.UserID)
		if err != nil {
			return nil, ReconciliationError(err)
		}
		saved, err := r.ledger.UpsertCustomer(ctx, sub.UserID, created)
		if err != nil {
			return nil, ReconciliationError(err)
		}
		customerID = saved.CustomerID()
		if customerID != created {
			r.log.Warn().
				Str("user_id", sub.UserID).
				Str("orphan_customer_id", created).
				Str("customer_id", customerID).
				Msg("concurrent checkout created a second gateway customer")
		}
	}

	sess, err := r.gateway.CreateCheckoutSession(ctx, CheckoutRequest{
		UserID:     sub.UserID,
		CustomerID: customerID,
		PriceID:    r.cfg.PriceID,
		SuccessURL: r.cfg.SuccessURL,
		CancelURL:  r.cfg.CancelURL,
	})
	if err != nil {
		return nil, ReconciliationError(err)
	}

	return &CheckoutResult{SessionID: sess.ID, RedirectURL: sess.URL}, nil
}

// ConfirmCheckout pulls the outcome of a finished checkout session from the
// gateway into the ledger. Running it again for the same session is harmless.
func (r *Reconciler) ConfirmCheckout(ctx context.Context, sub users.Subscriber, sessionID string) (*SubscriptionRecord, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, NotFoundError("checkout session not found")
	}

	rec, err := r.lookup(ctx, sub.UserID)
	if err != nil {
		return nil, err
	}

	sess, err := r.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, GatewayError(err)
	}
	if sess.CustomerID == "" || sess.CustomerID != rec.CustomerID() {
		return nil, NotFoundError("checkout session not found")
	}
	if sess.Subscription == nil || sess.Subscription.ID == "" {
		return nil, &Error{Kind: KindIncomplete, Message: "checkout has not completed yet"}
	}

	gs := sess.Subscription
	changes := RecordChanges{
		StripeSubscriptionID: &gs.ID,
		Status:               &gs.Status,
		CancelAtPeriodEnd:    &gs.CancelAtPeriodEnd,
	}
	if !gs.CurrentPeriodEnd.IsZero() {
		changes.CurrentPeriodEnd = &gs.CurrentPeriodEnd
	}
	if err := r.ledger.Update(ctx, sub.UserID, changes); err != nil {
		return nil, ReconciliationError(err)
	}

	rec.StripeSubscriptionID = &gs.ID
	rec.Status = gs.Status
	rec.CancelAtPeriodEnd = gs.CancelAtPeriodEnd
	if changes.CurrentPeriodEnd != nil {
		rec.CurrentPeriodEnd = changes.CurrentPeriodEnd
	}
	return rec, nil
}

func (r *Reconciler) Cancel(ctx context.Context, sub users.Subscriber) (*PeriodResult, error) {
	return r.setCancelAtPeriodEnd(ctx, sub, true)
}

// Reactivate clears a pending cancellation. The ledger status is forced to
// active without asking the gateway whether the subscription still is.
func (r *Reconciler) Reactivate(ctx context.Context, sub users.Subscriber) (*PeriodResult, error) {
	return r.setCancelAtPeriodEnd(ctx, sub, false)
}

func (r *Reconciler) setCancelAtPeriodEnd(ctx context.Context, sub users.Subscriber, cancel bool) (*PeriodResult, error) {
	rec, err := r.lookup(ctx, sub.UserID)
	if err != nil {
		return nil, err
	}
	if err := requireSubscription(rec); err != nil {
		return nil, err
	}

	var periodEnd time.Time
	if rec.IsSynthetic() {
		periodEnd = r.now().Add(SyntheticPeriod)
	} else {
		gs, err := r.gateway.UpdateSubscription(ctx, rec.SubscriptionID(), cancel)
		if err != nil {
			return nil, GatewayError(err)
		}
		periodEnd = gs.CurrentPeriodEnd
	}

	changes := RecordChanges{CancelAtPeriodEnd: &cancel}
	if !periodEnd.IsZero() {
		changes.CurrentPeriodEnd = &periodEnd
	}
	if !cancel {
		active := StatusActive
		changes.Status = &active
	}

	if err := r.ledger.Update(ctx, sub.UserID, changes); err != nil {
		if rec.IsSynthetic() {
			// nothing happened anywhere else, so this is a plain failure
			return nil, ReconciliationError(err)
		}
		// The gateway already changed; the ledger is left behind on purpose.
		r.log.Warn().Err(err).
			Str("user_id", sub.UserID).
			Str("subscription_id", rec.SubscriptionID()).
			Bool("cancel_at_period_end", cancel).
			Msg("ledger write failed after gateway update")
	}

	return &PeriodResult{PeriodEnd: periodEnd}, nil
}

// Subscription returns the caller's ledger row, or nil when there is none.
func (r *Reconciler) Subscription(ctx context.Context, sub users.Subscriber) (*SubscriptionRecord, error) {
	rec, err := r.ledger.FindByUserID(ctx, sub.UserID)
	if errors.Is(err, ErrNoRecord) {
		return nil, nil
	}
	if err != nil {
		return nil, ReconciliationError(err)
	}
	return rec, nil
}

func (r *Reconciler) Plan(ctx context.Context) (*plans.Plan, error) {
	p, err := r.gateway.GetPlan(ctx, r.cfg.PriceID)
	if err != nil {
		return nil, GatewayError(err)
	}
	return p, nil
}

func (r *Reconciler) lookup(ctx context.Context, userID string) (*SubscriptionRecord, error) {
	rec, err := r.ledger.FindByUserID(ctx, userID)
	if errors.Is(err, ErrNoRecord) {
		return nil, NotFoundError("no active subscription")
	}
	if err != nil {
		return nil, ReconciliationError(err)
	}
	return rec, nil
}
