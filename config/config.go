package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	checkoutSuccessPath = "/dashboard/billing?session_id={CHECKOUT_SESSION_ID}"
	checkoutCancelPath  = "/dashboard/billing?canceled=1"
)

type Config struct {
	Port       string
	AppEnv     string
	AppURL     string
	CORSOrigin string
	LogLevel   string

	DBURL string

	StripeSecretKey string
	StripePriceID   string
	StripeAPIURL    string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	OIDCIssuer        string
	OIDCAudience      string
	SessionCookie     string
}

// Load reads the process environment, after merging a local .env when one
// exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),
		AppURL:     strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		CORSOrigin: getEnv("CORS_ORIGIN", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		StripeAPIURL: getEnv("STRIPE_API_URL", ""),

		SupabaseURL:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		OIDCIssuer:        getEnv("OIDC_ISSUER", ""),
		OIDCAudience:      getEnv("OIDC_AUDIENCE", ""),
		SessionCookie:     getEnv("SESSION_COOKIE", "sb-access-token"),
	}

	var err error
	if cfg.DBURL, err = mustEnv("DB_URL"); err != nil {
		return nil, err
	}
	if cfg.StripeSecretKey, err = mustEnv("STRIPE_SECRET_KEY"); err != nil {
		return nil, err
	}
	if cfg.StripePriceID, err = mustEnv("STRIPE_PRICE_ID"); err != nil {
		return nil, err
	}

	if cfg.SupabaseJWTSecret == "" && cfg.OIDCIssuer == "" && cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("no token verifier configured: set SUPABASE_JWT_SECRET, OIDC_ISSUER or SUPABASE_URL")
	}

	return cfg, nil
}

func (c *Config) SuccessURL() string { return c.AppURL + checkoutSuccessPath }

func (c *Config) CancelURL() string { return c.AppURL + checkoutCancelPath }

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required environment variable: %s", key)
	}
	return v, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
