package stripe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barbershop-billing/internal/domain/billing"
	"barbershop-billing/internal/domain/plans"

	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

type Options struct {
	SecretKey string
	// APIURL overrides the API base, e.g. for stripe-mock. Empty means Stripe.
	APIURL            string
	AppEnv            string
	MaxNetworkRetries int64
	HTTPClient        *http.Client
}

// Gateway is the billing.Gateway backed by a per-instance Stripe client.
// It never touches the package level stripe.Key.
type Gateway struct {
	api    *client.API
	appEnv string
}

var _ billing.Gateway = (*Gateway)(nil)

func NewGateway(opts Options) *Gateway {
	cfg := &stripego.BackendConfig{
		MaxNetworkRetries: stripego.Int64(opts.MaxNetworkRetries),
		LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelError},
	}
	if opts.APIURL != "" {
		cfg.URL = stripego.String(opts.APIURL)
	}
	if opts.HTTPClient != nil {
		cfg.HTTPClient = opts.HTTPClient
	}

	backend := stripego.GetBackendWithConfig(stripego.APIBackend, cfg)
	api := client.New(opts.SecretKey, &stripego.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})

	return &Gateway{api: api, appEnv: opts.AppEnv}
}

func (g *Gateway) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	params := &stripego.CustomerParams{
		Email: stripego.String(email),
		Metadata: map[string]string{
			"user_id": userID,
			"app_env": g.appEnv,
		},
	}
	params.Context = ctx

	cus, err := g.api.Customers.New(params)
	if err != nil {
		return "", wrap("create customer", err)
	}
	return cus.ID, nil
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
		Mode:       stripego.String(string(stripego.CheckoutSessionModeSubscription)),
		Customer:   stripego.String(req.CustomerID),

		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{Price: stripego.String(req.PriceID), Quantity: stripego.Int64(1)},
		},

		ClientReferenceID: stripego.String(req.UserID),

		SubscriptionData: &stripego.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"user_id": req.UserID,
			},
		},
	}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, wrap("create checkout session", err)
	}
	return toCheckoutSession(s), nil
}

func (g *Gateway) GetCheckoutSession(ctx context.Context, sessionID string) (*billing.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("subscription")

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, wrap("get checkout session", err)
	}
	return toCheckoutSession(s), nil
}

func (g *Gateway) UpdateSubscription(ctx context.Context, subscriptionID string, cancelAtPeriodEnd bool) (*billing.GatewaySubscription, error) {
	params := &stripego.SubscriptionParams{
		CancelAtPeriodEnd: stripego.Bool(cancelAtPeriodEnd),
	}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Update(subscriptionID, params)
	if err != nil {
		return nil, wrap("update subscription", err)
	}
	return toGatewaySubscription(sub), nil
}

func (g *Gateway) GetPlan(ctx context.Context, priceID string) (*plans.Plan, error) {
	params := &stripego.PriceParams{}
	params.Context = ctx
	params.AddExpand("product")

	p, err := g.api.Prices.Get(priceID, params)
	if err != nil {
		return nil, wrap("get price", err)
	}

	plan := &plans.Plan{
		PriceID:    p.ID,
		Currency:   string(p.Currency),
		UnitAmount: plans.MajorUnits(p.UnitAmount, string(p.Currency)),
	}
	if p.Recurring != nil {
		plan.Interval = string(p.Recurring.Interval)
		plan.TrialDays = p.Recurring.TrialPeriodDays
	}
	if p.Product != nil {
		plan.ProductID = p.Product.ID
		plan.Name = p.Product.Name
		plan.Description = p.Product.Description
	}
	return plan, nil
}

func toCheckoutSession(s *stripego.CheckoutSession) *billing.CheckoutSession {
	out := &billing.CheckoutSession{ID: s.ID, URL: s.URL}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if s.Subscription != nil && s.Subscription.ID != "" {
		out.Subscription = toGatewaySubscription(s.Subscription)
	}
	return out
}

func toGatewaySubscription(sub *stripego.Subscription) *billing.GatewaySubscription {
	gs := &billing.GatewaySubscription{
		ID:                sub.ID,
		Status:            NormalizeStripeStatus(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.CurrentPeriodEnd > 0 {
		gs.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	return gs
}

// gatewayError keeps Stripe's own message reachable for the API response.
type gatewayError struct {
	op  string
	err error
}

func wrap(op string, err error) error {
	return &gatewayError{op: op, err: err}
}

func (e *gatewayError) Error() string { return "stripe " + e.op + ": " + e.err.Error() }

func (e *gatewayError) Unwrap() error { return e.err }

func (e *gatewayError) UpstreamMessage() string {
	var se *stripego.Error
	if errors.As(e.err, &se) && se.Msg != "" {
		return se.Msg
	}
	return e.err.Error()
}
