package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/billing")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_PRICE_ID", "price_123")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_URL", "https://shop.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "price_123", cfg.StripePriceID)
	assert.Equal(t, "sb-access-token", cfg.SessionCookie)
	assert.Equal(t, "https://shop.example.com/dashboard/billing?session_id={CHECKOUT_SESSION_ID}", cfg.SuccessURL())
	assert.Equal(t, "https://shop.example.com/dashboard/billing?canceled=1", cfg.CancelURL())
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("STRIPE_PRICE_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_PRICE_ID")
}

func TestLoadRequiresAVerifier(t *testing.T) {
	setRequired(t)
	t.Setenv("SUPABASE_JWT_SECRET", "")
	t.Setenv("OIDC_ISSUER", "")
	t.Setenv("SUPABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verifier")
}
